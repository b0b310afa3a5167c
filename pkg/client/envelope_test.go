package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testItem struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestDecodeList_BareArray(t *testing.T) {
	items, page, err := DecodeList[testItem]([]byte(`[{"id":1,"name":"a"},{"id":2,"name":"b"}]`))
	require.NoError(t, err)
	assert.Nil(t, page)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].Name)
	assert.Equal(t, 2, items[1].ID)
}

func TestDecodeList_Enveloped(t *testing.T) {
	items, page, err := DecodeList[testItem]([]byte(`{"success":true,"data":[{"id":1,"name":"a"}]}`))
	require.NoError(t, err)
	assert.Nil(t, page)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].ID)
}

func TestDecodeList_Paginated(t *testing.T) {
	body := []byte(`{
		"success": true,
		"data": {
			"data": [{"id":1,"name":"a"},{"id":2,"name":"b"}],
			"total": 42,
			"current_page": 3,
			"per_page": 2,
			"last_page": 21
		}
	}`)

	items, page, err := DecodeList[testItem](body)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.NotNil(t, page)
	assert.Equal(t, 42, page.Total)
	assert.Equal(t, 3, page.CurrentPage)
	assert.Equal(t, 2, page.PerPage)
	assert.Equal(t, 21, page.LastPage)
}

func TestDecodeList_EmptyShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"null body", "null"},
		{"null data", `{"data":null}`},
		{"missing data", `{"success":true}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, page, err := DecodeList[testItem]([]byte(tt.body))
			assert.NoError(t, err)
			assert.Nil(t, items)
			assert.Nil(t, page)
		})
	}

	t.Run("empty array", func(t *testing.T) {
		items, page, err := DecodeList[testItem]([]byte(`[]`))
		assert.NoError(t, err)
		assert.Empty(t, items)
		assert.Nil(t, page)
	})

	t.Run("paginated with null inner data", func(t *testing.T) {
		items, page, err := DecodeList[testItem]([]byte(`{"data":{"data":null,"total":0,"current_page":1}}`))
		assert.NoError(t, err)
		assert.Empty(t, items)
		require.NotNil(t, page)
		assert.Equal(t, 0, page.Total)
	})
}

func TestDecodeList_Malformed(t *testing.T) {
	_, _, err := DecodeList[testItem]([]byte(`{"data":[{"id":"not-a-number"}]}`))
	assert.Error(t, err)

	_, _, err = DecodeList[testItem]([]byte(`[{]`))
	assert.Error(t, err)
}

func TestDecodeObject_Bare(t *testing.T) {
	item, err := DecodeObject[testItem]([]byte(`{"id":5,"name":"suite"}`))
	require.NoError(t, err)
	assert.Equal(t, 5, item.ID)
	assert.Equal(t, "suite", item.Name)
}

func TestDecodeObject_Enveloped(t *testing.T) {
	item, err := DecodeObject[testItem]([]byte(`{"success":true,"data":{"id":5,"name":"suite"}}`))
	require.NoError(t, err)
	assert.Equal(t, 5, item.ID)
}

func TestDecodeObject_Empty(t *testing.T) {
	_, err := DecodeObject[testItem](nil)
	assert.Error(t, err)

	_, err = DecodeObject[testItem]([]byte("null"))
	assert.Error(t, err)
}
