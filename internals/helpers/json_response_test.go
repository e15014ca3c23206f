// file: internals/helpers/json_response_test.go
package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPagination(t *testing.T) {
	p := BuildPagination(95, 2, 20)
	assert.Equal(t, int64(95), p.Total)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 20, p.PerPage)
	assert.Equal(t, 5, p.TotalPages)

	// exact multiple
	p = BuildPagination(100, 1, 20)
	assert.Equal(t, 5, p.TotalPages)

	// empty result still reports one page
	p = BuildPagination(0, 1, 20)
	assert.Equal(t, 1, p.TotalPages)
}
