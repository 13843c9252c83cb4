package model

import (
	"slices"

	"gorm.io/datatypes"
)

// StringList 字符串数组，以 JSON 列存储
type StringList = datatypes.JSONSlice[string]

func cloneStrings(s StringList) StringList {
	if s == nil {
		return nil
	}
	return slices.Clone(s)
}

func cloneJSON(j datatypes.JSON) datatypes.JSON {
	if j == nil {
		return nil
	}
	return slices.Clone(j)
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
