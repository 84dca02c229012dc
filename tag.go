package typology

import (
	"reflect"
	"strings"

	"github.com/viant/tagly/format"
	"github.com/viant/tagly/format/text"
)

const (
	//TypeTag defines declared type tag, i.e. `type:"List<T>"`
	TypeTag = "type"
	//JSONTag defines field name tag
	JSONTag = "json"
	//FormatTag defines tagly format tag
	FormatTag = "format"
)

type fieldTag struct {
	name     string
	explicit bool
	ignore   bool
	inline   bool
	declared string
}

// parseFieldTag resolves precedence among json, format and type tags:
// json explicit name wins over format name or case, json "-", format ignore or set marker skips the field.
func parseFieldTag(sf reflect.StructField, caseFormat text.CaseFormat) *fieldTag {
	ret := &fieldTag{name: sf.Name, declared: strings.TrimSpace(sf.Tag.Get(TypeTag))}
	jsonTag := sf.Tag.Get(JSONTag)
	if jsonTag == "-" || IsSetMarker(sf.Tag) {
		ret.ignore = true
		return ret
	}
	if index := strings.IndexByte(jsonTag, ','); index != -1 {
		jsonTag = jsonTag[:index]
	}
	if jsonTag != "" {
		ret.name = jsonTag
		ret.explicit = true
	}
	if fTag, err := format.Parse(sf.Tag); err == nil && fTag != nil {
		if fTag.Ignore {
			ret.ignore = true
			return ret
		}
		ret.inline = fTag.Inline
		if !ret.explicit && (fTag.Name != "" || fTag.CaseFormat != "") {
			tag := &format.Tag{Name: fTag.Name, CaseFormat: fTag.CaseFormat}
			if tag.Name == "" {
				tag.Name = sf.Name
			}
			if name := tag.CaseFormatName(""); name != "" {
				ret.name = name
				ret.explicit = true
			}
		}
	}
	if !ret.explicit && caseFormat.IsDefined() {
		ret.name = text.DetectCaseFormat(sf.Name).Format(sf.Name, caseFormat)
	}
	return ret
}
