// Package conv provides the explicit primitive adaptation stage.
// It coerces generic decoded values (number literals, strings, bools) into exact
// Go primitive types, assigns converted values into reflect targets and formats
// floating point numbers.
package conv
