package syntax

// Kind tags a syntax node.
type Kind uint8

const (
	// Bogus wraps source the parser could not fit into the grammar. It accepts
	// any children and stands in for any node slot.
	Bogus Kind = iota

	Module
	ModuleItemList
	ExpressionStatement
	VariableStatement

	IdentifierExpression
	StringLiteralExpression
	NumberLiteralExpression
	BooleanLiteralExpression
	NullLiteralExpression
	UnaryExpression
	BinaryExpression
	LogicalExpression
	ConditionalExpression
	ParenthesizedExpression
	StaticMemberExpression
	CallExpression
	CallArguments
	CallArgumentList

	JsxTagExpression
	JsxElement
	JsxOpeningElement
	JsxClosingElement
	JsxSelfClosingElement
	JsxName
	JsxMemberName
	JsxAttributeList
	JsxAttribute
	JsxAttributeInitializer
	JsxString
	JsxExpressionAttributeValue
	JsxChildList
	JsxText
	JsxExpressionChild

	TypeArguments
	TypeArgumentList
	TypeReference

	kindCount
)

var kindNames = [kindCount]string{
	Bogus:                       "BOGUS",
	Module:                      "MODULE",
	ModuleItemList:              "MODULE_ITEM_LIST",
	ExpressionStatement:         "EXPRESSION_STATEMENT",
	VariableStatement:           "VARIABLE_STATEMENT",
	IdentifierExpression:        "IDENTIFIER_EXPRESSION",
	StringLiteralExpression:     "STRING_LITERAL_EXPRESSION",
	NumberLiteralExpression:     "NUMBER_LITERAL_EXPRESSION",
	BooleanLiteralExpression:    "BOOLEAN_LITERAL_EXPRESSION",
	NullLiteralExpression:       "NULL_LITERAL_EXPRESSION",
	UnaryExpression:             "UNARY_EXPRESSION",
	BinaryExpression:            "BINARY_EXPRESSION",
	LogicalExpression:           "LOGICAL_EXPRESSION",
	ConditionalExpression:       "CONDITIONAL_EXPRESSION",
	ParenthesizedExpression:     "PARENTHESIZED_EXPRESSION",
	StaticMemberExpression:      "STATIC_MEMBER_EXPRESSION",
	CallExpression:              "CALL_EXPRESSION",
	CallArguments:               "CALL_ARGUMENTS",
	CallArgumentList:            "CALL_ARGUMENT_LIST",
	JsxTagExpression:            "JSX_TAG_EXPRESSION",
	JsxElement:                  "JSX_ELEMENT",
	JsxOpeningElement:           "JSX_OPENING_ELEMENT",
	JsxClosingElement:           "JSX_CLOSING_ELEMENT",
	JsxSelfClosingElement:       "JSX_SELF_CLOSING_ELEMENT",
	JsxName:                     "JSX_NAME",
	JsxMemberName:               "JSX_MEMBER_NAME",
	JsxAttributeList:            "JSX_ATTRIBUTE_LIST",
	JsxAttribute:                "JSX_ATTRIBUTE",
	JsxAttributeInitializer:     "JSX_ATTRIBUTE_INITIALIZER",
	JsxString:                   "JSX_STRING",
	JsxExpressionAttributeValue: "JSX_EXPRESSION_ATTRIBUTE_VALUE",
	JsxChildList:                "JSX_CHILD_LIST",
	JsxText:                     "JSX_TEXT",
	JsxExpressionChild:          "JSX_EXPRESSION_CHILD",
	TypeArguments:               "TYPE_ARGUMENTS",
	TypeArgumentList:            "TYPE_ARGUMENT_LIST",
	TypeReference:               "TYPE_REFERENCE",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "KIND(?)"
}

// IsList reports whether nodes of this kind hold a variable number of
// homogeneous children instead of fixed slots.
func (k Kind) IsList() bool {
	return k < kindCount && grammar[k].list != nil
}

// Expressions lists every kind that may fill an expression slot.
var Expressions = []Kind{
	IdentifierExpression,
	StringLiteralExpression,
	NumberLiteralExpression,
	BooleanLiteralExpression,
	NullLiteralExpression,
	UnaryExpression,
	BinaryExpression,
	LogicalExpression,
	ConditionalExpression,
	ParenthesizedExpression,
	StaticMemberExpression,
	CallExpression,
	JsxTagExpression,
}

// JsxTags lists the kinds that may stand wherever a JSX tag is expected.
var JsxTags = []Kind{JsxElement, JsxSelfClosingElement}
