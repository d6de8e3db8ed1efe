package nodes

import "strconv"

// Kind identifies a node variant. Visitors key their override tables and
// the registry keys its factories by Kind.
type Kind int

const (
	KindUnknown Kind = iota
	KindTable
	KindTableAlias
	KindAttribute
	KindQuoted
	KindCasted
	KindBindParam
	KindSqlLiteral
	KindStar
	KindEquality
	KindNotEqual
	KindGreaterThan
	KindGreaterThanOrEqual
	KindLessThan
	KindLessThanOrEqual
	KindIsDistinctFrom
	KindIsNotDistinctFrom
	KindCaseSensitiveEqual
	KindCaseInsensitiveEqual
	KindContains
	KindOverlaps
	KindMatches
	KindDoesNotMatch
	KindRegex
	KindNotRegex
	KindIn
	KindNotIn
	KindBetween
	KindNotBetween
	KindIsNull
	KindIsNotNull
	KindAnd
	KindOr
	KindNot
	KindGrouping
	KindInfixOperation
	KindUnaryOperation
	KindCount
	KindSum
	KindMax
	KindMin
	KindAvg
	KindExists
	KindExtract
	KindNamedFunction
	KindCase
	KindAlias
	KindAscending
	KindDescending
	KindNullsFirst
	KindNullsLast
	KindInnerJoin
	KindOuterJoin
	KindRightOuterJoin
	KindFullOuterJoin
	KindCrossJoin
	KindStringJoin
	KindLateral
	KindJoinSource
	KindUnion
	KindUnionAll
	KindIntersect
	KindIntersectAll
	KindExcept
	KindExceptAll
	KindWindowFunction
	KindOver
	KindWindow
	KindCube
	KindRollup
	KindGroupingSets
	KindDistinct
	KindDistinctOn
	KindLimit
	KindOffset
	KindLock
	KindCTE
	KindSelectCore
	KindSelectStatement
	KindInsertStatement
	KindUpdateStatement
	KindDeleteStatement
	KindAssignment
	KindOnConflict

	kindCount
)

var kindNames = [...]string{
	KindUnknown:              "Unknown",
	KindTable:                "Table",
	KindTableAlias:           "TableAlias",
	KindAttribute:            "Attribute",
	KindQuoted:               "Quoted",
	KindCasted:               "Casted",
	KindBindParam:            "BindParam",
	KindSqlLiteral:           "SqlLiteral",
	KindStar:                 "Star",
	KindEquality:             "Equality",
	KindNotEqual:             "NotEqual",
	KindGreaterThan:          "GreaterThan",
	KindGreaterThanOrEqual:   "GreaterThanOrEqual",
	KindLessThan:             "LessThan",
	KindLessThanOrEqual:      "LessThanOrEqual",
	KindIsDistinctFrom:       "IsDistinctFrom",
	KindIsNotDistinctFrom:    "IsNotDistinctFrom",
	KindCaseSensitiveEqual:   "CaseSensitiveEqual",
	KindCaseInsensitiveEqual: "CaseInsensitiveEqual",
	KindContains:             "Contains",
	KindOverlaps:             "Overlaps",
	KindMatches:              "Matches",
	KindDoesNotMatch:         "DoesNotMatch",
	KindRegex:                "Regex",
	KindNotRegex:             "NotRegex",
	KindIn:                   "In",
	KindNotIn:                "NotIn",
	KindBetween:              "Between",
	KindNotBetween:           "NotBetween",
	KindIsNull:               "IsNull",
	KindIsNotNull:            "IsNotNull",
	KindAnd:                  "And",
	KindOr:                   "Or",
	KindNot:                  "Not",
	KindGrouping:             "Grouping",
	KindInfixOperation:       "InfixOperation",
	KindUnaryOperation:       "UnaryOperation",
	KindCount:                "Count",
	KindSum:                  "Sum",
	KindMax:                  "Max",
	KindMin:                  "Min",
	KindAvg:                  "Avg",
	KindExists:               "Exists",
	KindExtract:              "Extract",
	KindNamedFunction:        "NamedFunction",
	KindCase:                 "Case",
	KindAlias:                "Alias",
	KindAscending:            "Ascending",
	KindDescending:           "Descending",
	KindNullsFirst:           "NullsFirst",
	KindNullsLast:            "NullsLast",
	KindInnerJoin:            "InnerJoin",
	KindOuterJoin:            "OuterJoin",
	KindRightOuterJoin:       "RightOuterJoin",
	KindFullOuterJoin:        "FullOuterJoin",
	KindCrossJoin:            "CrossJoin",
	KindStringJoin:           "StringJoin",
	KindLateral:              "Lateral",
	KindJoinSource:           "JoinSource",
	KindUnion:                "Union",
	KindUnionAll:             "UnionAll",
	KindIntersect:            "Intersect",
	KindIntersectAll:         "IntersectAll",
	KindExcept:               "Except",
	KindExceptAll:            "ExceptAll",
	KindWindowFunction:       "WindowFunction",
	KindOver:                 "Over",
	KindWindow:               "Window",
	KindCube:                 "Cube",
	KindRollup:               "Rollup",
	KindGroupingSets:         "GroupingSets",
	KindDistinct:             "Distinct",
	KindDistinctOn:           "DistinctOn",
	KindLimit:                "Limit",
	KindOffset:               "Offset",
	KindLock:                 "Lock",
	KindCTE:                  "CTE",
	KindSelectCore:           "SelectCore",
	KindSelectStatement:      "SelectStatement",
	KindInsertStatement:      "InsertStatement",
	KindUpdateStatement:      "UpdateStatement",
	KindDeleteStatement:      "DeleteStatement",
	KindAssignment:           "Assignment",
	KindOnConflict:           "OnConflict",
}

func (k Kind) String() string {
	if k >= 0 && k < kindCount {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}
