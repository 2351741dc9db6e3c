// Package remotetest содержит подменную реализацию remote.Client для тестов
package remotetest

import (
	"context"
	"sync"

	"staff-portal-backend/lib/remote"
)

type Call struct {
	Method string
	Query  remote.Query
	Values map[string]interface{}
	Row    interface{}
}

// Fake записывает все обращения и делегирует ответы функциям-обработчикам.
// Не заданный обработчик отвечает нулем/пустым результатом.
type Fake struct {
	CountFunc  func(q remote.Query) (int64, error)
	FindFunc   func(q remote.Query, dest interface{}) error
	FirstFunc  func(q remote.Query, dest interface{}) error
	InsertFunc func(table remote.Table, row interface{}) error
	UpdateFunc func(q remote.Query, values map[string]interface{}, dest interface{}) error

	mu    sync.Mutex
	calls []Call
}

func (f *Fake) Count(ctx context.Context, q remote.Query) (int64, error) {
	f.record(Call{Method: "Count", Query: q})
	if f.CountFunc == nil {
		return 0, nil
	}
	return f.CountFunc(q)
}

func (f *Fake) Find(ctx context.Context, q remote.Query, dest interface{}) error {
	f.record(Call{Method: "Find", Query: q})
	if f.FindFunc == nil {
		return nil
	}
	return f.FindFunc(q, dest)
}

func (f *Fake) First(ctx context.Context, q remote.Query, dest interface{}) error {
	f.record(Call{Method: "First", Query: q})
	if f.FirstFunc == nil {
		return remote.NewError("запись не найдена", remote.CodeNoRows)
	}
	return f.FirstFunc(q, dest)
}

func (f *Fake) Insert(ctx context.Context, table remote.Table, row interface{}) error {
	f.record(Call{Method: "Insert", Query: remote.From(table), Row: row})
	if f.InsertFunc == nil {
		return nil
	}
	return f.InsertFunc(table, row)
}

func (f *Fake) Update(ctx context.Context, q remote.Query, values map[string]interface{}, dest interface{}) error {
	f.record(Call{Method: "Update", Query: q, Values: values})
	if f.UpdateFunc == nil {
		return nil
	}
	return f.UpdateFunc(q, values, dest)
}

func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call{}, f.calls...)
}

// CallsTo обращения к конкретной таблице
func (f *Fake) CallsTo(table remote.Table) []Call {
	result := []Call{}
	for _, call := range f.Calls() {
		if call.Query.Table == table {
			result = append(result, call)
		}
	}
	return result
}

func (f *Fake) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

func (f *Fake) record(call Call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

var _ remote.Client = (*Fake)(nil)
