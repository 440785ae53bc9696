package closer

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	name  string
	order *[]string
	err   error
}

func (r *recorder) Close() error {
	*r.order = append(*r.order, r.name)
	return r.err
}

func TestClose_JoinsError(t *testing.T) {
	errClose := errors.New("close failed")
	errBody := errors.New("body failed")

	run := func() (err error) {
		var order []string
		defer Close(&recorder{name: "a", order: &order, err: errClose}, &err)
		return errBody
	}

	err := run()
	require.ErrorIs(t, err, errBody)
	require.ErrorIs(t, err, errClose)
}

func TestClose_SkipsNil(t *testing.T) {
	var err error
	var r *recorder
	var f *os.File

	assert.NotPanics(t, func() {
		Close(nil, &err)
		Close(r, &err)
		Close(f, &err)
		Close(Func(nil), &err)
	})
	assert.NoError(t, err)
}

func TestAll_ReverseOrder(t *testing.T) {
	var order []string
	errB := errors.New("b")

	err := All(
		&recorder{name: "a", order: &order},
		&recorder{name: "b", order: &order, err: errB},
		Func(func() error { order = append(order, "c"); return nil }),
	)

	require.ErrorIs(t, err, errB)
	assert.Equal(t, []string{"c", "b", "a"}, order)
}
