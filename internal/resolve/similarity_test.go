package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenSortRatio_Identical(t *testing.T) {
	assert.Equal(t, 100, TokenSortRatio("athinaion", "athinaion"))
}

func TestTokenSortRatio_TokenOrderInsensitive(t *testing.T) {
	assert.Equal(t, 100, TokenSortRatio("agios molos", "molos agios"))
}

func TestTokenSortRatio_CloseNames(t *testing.T) {
	score := TokenSortRatio("thessaloniki", "thessalonikis")
	assert.Greater(t, score, 85)
	assert.Less(t, score, 100)
}

func TestTokenSortRatio_Distant(t *testing.T) {
	assert.Less(t, TokenSortRatio("athens", "kavala"), 50)
}

func TestTokenSortRatio_EmptyNeverMatchesEmpty(t *testing.T) {
	assert.Equal(t, 0, TokenSortRatio("", ""))
}

func TestTokenSortRatio_Bounds(t *testing.T) {
	for _, pair := range [][2]string{{"a", "z"}, {"abc", ""}, {"x", "x"}} {
		score := TokenSortRatio(pair[0], pair[1])
		assert.GreaterOrEqual(t, score, 0)
		assert.LessOrEqual(t, score, 100)
	}
}
