package repository

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"tarefas/internal/interfaces"
	"tarefas/internal/models"
)

const maxPrioridadeLen = 50

// taskColumn is one updatable column of tarefas. bind checks a decoded JSON
// value and converts it to the driver argument for that column.
type taskColumn struct {
	name string
	bind func(v any) (any, error)
}

// updatableTaskColumns is the allow-list for partial updates. Column names
// in generated SQL come from here only, never from caller input. id and
// usuario_id are not updatable.
var updatableTaskColumns = []taskColumn{
	{name: "texto", bind: bindTexto},
	{name: "prazo", bind: bindPrazo},
	{name: "prioridade", bind: bindPrioridade},
	{name: "concluida", bind: bindConcluida},
}

const taskReturning = "id, texto, prazo, prioridade, concluida, usuario_id"

// buildTaskUpdate renders an UPDATE touching exactly the given fields and
// ending with the ownership predicate.
func buildTaskUpdate(fields map[string]any, id int64, ownerID string) (string, []any, error) {
	if len(fields) == 0 {
		return "", nil, interfaces.ErrNoFields
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !isUpdatableTaskColumn(k) {
			return "", nil, &interfaces.FieldError{Field: k, Reason: "unknown field"}
		}
	}

	sets := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+2)
	for _, col := range updatableTaskColumns {
		raw, ok := fields[col.name]
		if !ok {
			continue
		}
		v, err := col.bind(raw)
		if err != nil {
			return "", nil, &interfaces.FieldError{Field: col.name, Reason: err.Error()}
		}
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col.name, len(args)))
	}

	args = append(args, id, ownerID)
	query := fmt.Sprintf(
		"UPDATE tarefas SET %s WHERE id = $%d AND usuario_id = $%d RETURNING %s",
		strings.Join(sets, ", "),
		len(args)-1,
		len(args),
		taskReturning,
	)
	return query, args, nil
}

func isUpdatableTaskColumn(name string) bool {
	for _, col := range updatableTaskColumns {
		if col.name == name {
			return true
		}
	}
	return false
}

func bindTexto(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("must be a string")
	}
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("must not be empty")
	}
	return s, nil
}

// bindPrazo treats "" like null, matching create.
func bindPrazo(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("must be a date string or null")
	}
	if s == "" {
		return nil, nil
	}
	if _, err := time.Parse(models.DateLayout, s); err != nil {
		return nil, fmt.Errorf("must use the %s format", models.DateLayout)
	}
	return s, nil
}

func bindPrioridade(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("must be a string or null")
	}
	if utf8.RuneCountInString(s) > maxPrioridadeLen {
		return nil, fmt.Errorf("must be at most %d characters", maxPrioridadeLen)
	}
	return s, nil
}

func bindConcluida(v any) (any, error) {
	b, ok := v.(bool)
	if !ok {
		return nil, fmt.Errorf("must be a boolean")
	}
	return b, nil
}
