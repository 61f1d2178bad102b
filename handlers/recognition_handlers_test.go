package handlers

import (
	"testing"

	"app/models"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSON(t *testing.T) {
	raw := "Here are the counts:\n```json\n{\"counts\":[{\"product_type\":\"soup\",\"count\":7}]}\n```"
	assert.Equal(t, `{"counts":[{"product_type":"soup","count":7}]}`, extractJSON(raw))

	assert.Equal(t, "", extractJSON("no json here"))
}

func TestParseRecognizedCountsWrappedArray(t *testing.T) {
	counts, err := parseRecognizedCounts([]byte(`{"counts":[{"product_type":"soup","count":7},{"product_type":"cereal","count":3}]}`))
	assert.NoError(t, err)
	assert.Equal(t, []models.RecognizedCount{
		{ProductType: "soup", Count: 7},
		{ProductType: "cereal", Count: 3},
	}, counts)
}

func TestParseRecognizedCountsBareArray(t *testing.T) {
	counts, err := parseRecognizedCounts([]byte(`[{"product":"soup","quantity":7}]`))
	assert.NoError(t, err)
	assert.Equal(t, []models.RecognizedCount{{ProductType: "soup", Count: 7}}, counts)
}

func TestParseRecognizedCountsFieldAliases(t *testing.T) {
	cases := []struct {
		payload string
		want    models.RecognizedCount
	}{
		{`{"counts":[{"name":"soup","qty":2}]}`, models.RecognizedCount{ProductType: "soup", Count: 2}},
		{`{"counts":[{"item":"soup","units":9}]}`, models.RecognizedCount{ProductType: "soup", Count: 9}},
		{`{"counts":[{"label":"soup","count":1}]}`, models.RecognizedCount{ProductType: "soup", Count: 1}},
	}

	for _, tc := range cases {
		counts, err := parseRecognizedCounts([]byte(tc.payload))
		assert.NoError(t, err, tc.payload)
		assert.Equal(t, []models.RecognizedCount{tc.want}, counts)
	}
}

func TestParseRecognizedCountsSingleKeyFallback(t *testing.T) {
	// An object whose only key is unrecognized and numeric is read as
	// {product: key, count: value}.
	counts, err := parseRecognizedCounts([]byte(`{"counts":[{"canned_beans":12}]}`))
	assert.NoError(t, err)
	assert.Equal(t, []models.RecognizedCount{{ProductType: "canned_beans", Count: 12}}, counts)
}

func TestParseRecognizedCountsRejectsAmbiguousObjects(t *testing.T) {
	// A lone count field must not be mistaken for a product name.
	_, err := parseRecognizedCounts([]byte(`{"counts":[{"count":3}]}`))
	assert.Error(t, err)

	_, err = parseRecognizedCounts([]byte(`{"counts":[{"foo":"bar"}]}`))
	assert.Error(t, err)

	_, err = parseRecognizedCounts([]byte(`"just a string"`))
	assert.Error(t, err)
}
