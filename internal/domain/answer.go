package domain

import "github.com/google/uuid"

// AnswerType identifies how a question is presented to participants and
// which answer table stores its responses.
type AnswerType string

const (
	AnswerTypeBooleanCheckbox AnswerType = "bc"
	AnswerTypeBooleanSelect   AnswerType = "bs"
	AnswerTypeIntegerTextbox  AnswerType = "i"
	AnswerTypeIntegerScale    AnswerType = "is"
	AnswerTypeFloat           AnswerType = "f"
	AnswerTypeText            AnswerType = "t"
	AnswerTypeLongText        AnswerType = "tl"
	AnswerTypeSingleSelect    AnswerType = "ss"
	AnswerTypeMultipleSelect  AnswerType = "ms"
)

// AnswerTable names one of the five typed answer tables.
type AnswerTable string

const (
	AnswerTableBoolean AnswerTable = "boolean"
	AnswerTableInteger AnswerTable = "integer"
	AnswerTableFloat   AnswerTable = "float"
	AnswerTableString  AnswerTable = "string"
	AnswerTableMany    AnswerTable = "many"
)

// AnswerTables is the answer type to storage table dispatch. The question
// serializer and the answer repository both go through this map, so it must
// stay exhaustive: every AnswerType constant has an entry.
var AnswerTables = map[AnswerType]AnswerTable{
	AnswerTypeBooleanCheckbox: AnswerTableBoolean,
	AnswerTypeBooleanSelect:   AnswerTableBoolean,
	AnswerTypeIntegerTextbox:  AnswerTableInteger,
	AnswerTypeIntegerScale:    AnswerTableInteger,
	AnswerTypeFloat:           AnswerTableFloat,
	AnswerTypeText:            AnswerTableString,
	AnswerTypeLongText:        AnswerTableString,
	AnswerTypeSingleSelect:    AnswerTableString,
	AnswerTypeMultipleSelect:  AnswerTableMany,
}

// AnswerTypesByTable is the reverse of AnswerTables, used when aggregating
// answers across all tables.
var AnswerTypesByTable = map[AnswerTable][]AnswerType{
	AnswerTableBoolean: {AnswerTypeBooleanCheckbox, AnswerTypeBooleanSelect},
	AnswerTableInteger: {AnswerTypeIntegerTextbox, AnswerTypeIntegerScale},
	AnswerTableFloat:   {AnswerTypeFloat},
	AnswerTableString:  {AnswerTypeText, AnswerTypeLongText, AnswerTypeSingleSelect},
	AnswerTableMany:    {AnswerTypeMultipleSelect},
}

// NumericAnswerTypes are the types whose min/max constraints apply.
var NumericAnswerTypes = []AnswerType{
	AnswerTypeIntegerTextbox,
	AnswerTypeIntegerScale,
	AnswerTypeFloat,
}

func (t AnswerType) IsValid() bool {
	_, ok := AnswerTables[t]
	return ok
}

func (t AnswerType) Table() AnswerTable {
	return AnswerTables[t]
}

func (t AnswerType) IsNumeric() bool {
	for _, n := range NumericAnswerTypes {
		if t == n {
			return true
		}
	}
	return false
}

// AnswerValue is a single typed answer. Table selects which of the value
// fields is populated; the others stay at their zero value. Boolean answers
// are stored only when a value was given, so Bool carries no "unanswered"
// state.
type AnswerValue struct {
	Table AnswerTable
	Bool  *bool
	Int   *int64
	Float *float64
	Text  *string
	Many  []string
}

func BoolAnswer(v bool) AnswerValue {
	return AnswerValue{Table: AnswerTableBoolean, Bool: &v}
}

func IntAnswer(v int64) AnswerValue {
	return AnswerValue{Table: AnswerTableInteger, Int: &v}
}

func FloatAnswer(v float64) AnswerValue {
	return AnswerValue{Table: AnswerTableFloat, Float: &v}
}

func TextAnswer(v string) AnswerValue {
	return AnswerValue{Table: AnswerTableString, Text: &v}
}

func ManyAnswer(v []string) AnswerValue {
	return AnswerValue{Table: AnswerTableMany, Many: v}
}

// Raw returns the populated value as an untyped interface for JSON encoding.
func (v AnswerValue) Raw() interface{} {
	switch v.Table {
	case AnswerTableBoolean:
		if v.Bool != nil {
			return *v.Bool
		}
	case AnswerTableInteger:
		if v.Int != nil {
			return *v.Int
		}
	case AnswerTableFloat:
		if v.Float != nil {
			return *v.Float
		}
	case AnswerTableString:
		if v.Text != nil {
			return *v.Text
		}
	case AnswerTableMany:
		return v.Many
	}
	return nil
}

// Answer is one stored answer row: which feedback it belongs to and its value.
type Answer struct {
	QuestionID uuid.UUID
	FeedbackID uuid.UUID
	Value      AnswerValue
}

// QuestionAnswer pairs a question with the answer a feedback gave to it.
type QuestionAnswer struct {
	Question *Question
	Value    AnswerValue
}
