package repository

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var errEmptyPatch = errors.New("empty patch")

// ColumnError 表示 patch 里包含了不允许修改的列
type ColumnError struct {
	Table  string
	Column string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("column %s.%s cannot be updated", e.Table, e.Column)
}

// buildUpdate 根据白名单生成单行 UPDATE 语句，列按名称排序以保证 SQL 稳定
func buildUpdate(table string, allowed map[string]bool, id int64, patch map[string]any) (string, []any, []string, error) {
	if len(patch) == 0 {
		return "", nil, nil, errEmptyPatch
	}

	fields := make([]string, 0, len(patch))
	for col := range patch {
		if !allowed[col] {
			return "", nil, nil, &ColumnError{Table: table, Column: col}
		}
		fields = append(fields, col)
	}
	sort.Strings(fields)

	sets := make([]string, len(fields))
	args := make([]any, 0, len(fields)+1)
	for i, col := range fields {
		sets[i] = fmt.Sprintf("%s = $%d", col, i+1)
		args = append(args, patch[col])
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", table, strings.Join(sets, ", "), len(args))
	return query, args, fields, nil
}
