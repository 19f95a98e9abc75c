package gdast

// Kind identifies the grammatical production a Node represents. The set is
// closed; renderers and rules switch on it exhaustively and fall back to
// verbatim output for anything they do not recognize.
type Kind uint8

const (
	KindUnknown Kind = iota

	// Structure.
	KindSource
	KindBody
	KindClassDefinition
	KindFunctionDefinition
	KindParameters
	KindTypedParameter
	KindDefaultParameter
	KindTypedDefaultParameter
	KindVariableStatement
	KindConstStatement
	KindSignalStatement
	KindEnumDefinition
	KindEnumBody
	KindEnumerator
	KindExtendsStatement
	KindClassNameStatement
	KindAnnotations
	KindAnnotation

	// Simple statements.
	KindPassStatement
	KindBreakStatement
	KindContinueStatement
	KindBreakpointStatement
	KindReturnStatement
	KindExpressionStatement

	// Compound statements.
	KindIfStatement
	KindElifClause
	KindElseClause
	KindForStatement
	KindWhileStatement
	KindMatchStatement
	KindMatchBody
	KindMatchArm

	// Expressions.
	KindAssignment
	KindAugmentedAssignment
	KindConditionalExpression
	KindBooleanOperator
	KindNotOperator
	KindComparisonOperator
	KindBinaryOperator
	KindUnaryOperator
	KindCastExpression
	KindAwaitExpression
	KindCall
	KindArguments
	KindAttribute
	KindSubscript
	KindParenthesizedExpression
	KindArray
	KindDictionary
	KindPair

	// Leaves. Everything from KindIdentifier onward compares by source text
	// in the equivalence checker.
	KindIdentifier
	KindName
	KindType
	KindInteger
	KindFloat
	KindString
	KindStringName
	KindNodePath
	KindGetNode
	KindTrue
	KindFalse
	KindNull
	KindSelf
	KindPattern
	KindPropertyBody
	KindLambda

	// Anonymous tokens. Never named, never compared.
	KindComma
	KindPunct
	KindOperator
)

var kindNames = map[Kind]string{
	KindUnknown:                 "unknown",
	KindSource:                  "source",
	KindBody:                    "body",
	KindClassDefinition:         "class_definition",
	KindFunctionDefinition:      "function_definition",
	KindParameters:              "parameters",
	KindTypedParameter:          "typed_parameter",
	KindDefaultParameter:        "default_parameter",
	KindTypedDefaultParameter:   "typed_default_parameter",
	KindVariableStatement:       "variable_statement",
	KindConstStatement:          "const_statement",
	KindSignalStatement:         "signal_statement",
	KindEnumDefinition:          "enum_definition",
	KindEnumBody:                "enum_body",
	KindEnumerator:              "enumerator",
	KindExtendsStatement:        "extends_statement",
	KindClassNameStatement:      "class_name_statement",
	KindAnnotations:             "annotations",
	KindAnnotation:              "annotation",
	KindPassStatement:           "pass_statement",
	KindBreakStatement:          "break_statement",
	KindContinueStatement:       "continue_statement",
	KindBreakpointStatement:     "breakpoint_statement",
	KindReturnStatement:         "return_statement",
	KindExpressionStatement:     "expression_statement",
	KindIfStatement:             "if_statement",
	KindElifClause:              "elif_clause",
	KindElseClause:              "else_clause",
	KindForStatement:            "for_statement",
	KindWhileStatement:          "while_statement",
	KindMatchStatement:          "match_statement",
	KindMatchBody:               "match_body",
	KindMatchArm:                "match_arm",
	KindAssignment:              "assignment",
	KindAugmentedAssignment:     "augmented_assignment",
	KindConditionalExpression:   "conditional_expression",
	KindBooleanOperator:         "boolean_operator",
	KindNotOperator:             "not_operator",
	KindComparisonOperator:      "comparison_operator",
	KindBinaryOperator:          "binary_operator",
	KindUnaryOperator:           "unary_operator",
	KindCastExpression:          "cast_expression",
	KindAwaitExpression:         "await_expression",
	KindCall:                    "call",
	KindArguments:               "arguments",
	KindAttribute:               "attribute",
	KindSubscript:               "subscript",
	KindParenthesizedExpression: "parenthesized_expression",
	KindArray:                   "array",
	KindDictionary:              "dictionary",
	KindPair:                    "pair",
	KindIdentifier:              "identifier",
	KindName:                    "name",
	KindType:                    "type",
	KindInteger:                 "integer",
	KindFloat:                   "float",
	KindString:                  "string",
	KindStringName:              "string_name",
	KindNodePath:                "node_path",
	KindGetNode:                 "get_node",
	KindTrue:                    "true",
	KindFalse:                   "false",
	KindNull:                    "null",
	KindSelf:                    "self",
	KindPattern:                 "pattern",
	KindPropertyBody:            "property_body",
	KindLambda:                  "lambda",
	KindComma:                   ",",
	KindPunct:                   "punct",
	KindOperator:                "operator",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// IsLeafValue reports whether nodes of this kind carry their meaning in their
// source text rather than in child structure.
func (k Kind) IsLeafValue() bool {
	return k >= KindIdentifier && k <= KindLambda
}

// Field labels the role a child plays inside its parent.
type Field uint8

const (
	FieldNone Field = iota
	FieldName
	FieldType
	FieldValue
	FieldBody
	FieldCondition
	FieldLeft
	FieldRight
	FieldOperator
	FieldParameters
	FieldReturnType
	FieldFunction
	FieldArguments
	FieldObject
	FieldAttribute
	FieldIndex
	FieldKey
	FieldExtends
)

var fieldNames = map[Field]string{
	FieldNone:       "",
	FieldName:       "name",
	FieldType:       "type",
	FieldValue:      "value",
	FieldBody:       "body",
	FieldCondition:  "condition",
	FieldLeft:       "left",
	FieldRight:      "right",
	FieldOperator:   "operator",
	FieldParameters: "parameters",
	FieldReturnType: "return_type",
	FieldFunction:   "function",
	FieldArguments:  "arguments",
	FieldObject:     "object",
	FieldAttribute:  "attribute",
	FieldIndex:      "index",
	FieldKey:        "key",
	FieldExtends:    "extends",
}

func (f Field) String() string { return fieldNames[f] }
