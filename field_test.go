package typology

import (
	"reflect"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/viant/tagly/format/text"
	"github.com/viant/typology/conv"
)

type audit struct {
	CreatedBy string `json:"createdBy"`
}

type account struct {
	audit
	ID       int
	FullName string   `format:"name=full"`
	Email    string   `json:"email,omitempty" format:"name=ignored"`
	Hidden   string   `json:"-"`
	Skipped  string   `format:"ignore"`
	Tags     []string `type:"List<String>"`
	Nick     *string
	private  string
}

func TestClasses_Fields(t *testing.T) {
	var testCases = []struct {
		description string
		caseFormat  text.CaseFormat
		expect      []string
	}{
		{description: "field names", caseFormat: text.CaseFormatUndefined, expect: []string{"createdBy", "ID", "full", "email", "Tags", "Nick"}},
		{description: "case format", caseFormat: text.CaseFormatLowerUnderscore, expect: []string{"createdBy", "id", "full", "email", "tags", "nick"}},
	}

	classes := NewClasses()
	class := classes.MustRegister("Account", reflect.TypeOf(account{}))
	for _, testCase := range testCases {
		fields, err := classes.Fields(class, testCase.caseFormat)
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		var actual []string
		for _, field := range fields {
			actual = append(actual, field.Name)
		}
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}

	_, err := classes.Fields(&Class{Name: "Integer", Category: PrimitiveCategory}, text.CaseFormatUndefined)
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestField_ValueSet(t *testing.T) {
	classes := NewClasses()
	class := classes.MustRegister("Account", reflect.TypeOf(account{}))
	fields, err := classes.Fields(class, text.CaseFormatUndefined)
	assert.Nil(t, err)
	byName := map[string]*Field{}
	for _, field := range fields {
		byName[field.Name] = field
	}
	converter := conv.NewConverter(conv.DefaultOptions())
	value := &account{}
	holder := unsafe.Pointer(value)

	assert.Nil(t, byName["createdBy"].Set(holder, "bob", converter))
	assert.Nil(t, byName["ID"].Set(holder, int64(7), converter))
	assert.Nil(t, byName["Tags"].Set(holder, []interface{}{"a"}, converter))
	assert.Nil(t, byName["Nick"].Set(holder, "n", converter))
	assert.NotNil(t, byName["ID"].Set(holder, "x", converter))

	assert.Equal(t, "bob", value.CreatedBy)
	assert.Equal(t, 7, value.ID)
	assert.Equal(t, []string{"a"}, value.Tags)
	assert.Equal(t, "n", *value.Nick)

	assert.Equal(t, "bob", byName["createdBy"].Value(holder))
	assert.Equal(t, "List<String>", byName["Tags"].Type.Key())
	assert.Equal(t, "Long", byName["ID"].Type.Key())
	assert.True(t, byName["Nick"].Nullable())
	assert.False(t, byName["ID"].Nullable())
	assert.Equal(t, "", byName["email"].Value(holder))
	value.Nick = nil
	assert.Nil(t, byName["Nick"].Value(holder))
}
