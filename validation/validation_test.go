package validation

import (
	"testing"

	"github.com/meghashyamc/sitesearch/logger"
	"github.com/stretchr/testify/require"
)

type testRequest struct {
	Query     string   `json:"query" validate:"required,valid_query,max=20"`
	Types     string   `json:"types" validate:"valid_content_types"`
	TypeList  []string `json:"type_list" validate:"valid_content_types"`
	From      string   `json:"from" validate:"valid_date"`
	SortOrder string   `json:"sort_order" validate:"omitempty,oneof=asc desc"`
}

type validationTestCase struct {
	name          string
	request       testRequest
	expectedError string
}

var validationTestCases = []validationTestCase{
	{
		name:    "Valid",
		request: testRequest{Query: "roses", Types: "project,blog", TypeList: []string{"service"}, From: "2024-01-31", SortOrder: "asc"},
	},
	{
		name:          "MissingQuery",
		request:       testRequest{},
		expectedError: "missing required field 'query'",
	},
	{
		name:          "BlankQuery",
		request:       testRequest{Query: "   "},
		expectedError: "invalid query",
	},
	{
		name:          "QueryTooLong",
		request:       testRequest{Query: "a very long query about peonies"},
		expectedError: "value or length of field 'query' is not in the expected range",
	},
	{
		name:          "UnknownType",
		request:       testRequest{Query: "roses", Types: "project,gallery"},
		expectedError: "invalid content types",
	},
	{
		name:          "UnknownTypeInList",
		request:       testRequest{Query: "roses", TypeList: []string{"blog", "gallery"}},
		expectedError: "invalid content types",
	},
	{
		name:          "BadDate",
		request:       testRequest{Query: "roses", From: "31/01/2024"},
		expectedError: "invalid date, expected 2006-01-02",
	},
	{
		name:          "BadSortOrder",
		request:       testRequest{Query: "roses", SortOrder: "sideways"},
		expectedError: "field 'sort_order' must be one of: asc desc",
	},
}

func TestValidate(t *testing.T) {
	validator, err := New(logger.NewDiscard())
	require.NoError(t, err, "could not create validator")

	for _, tc := range validationTestCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := require.New(t)

			err := validator.Validate(tc.request)
			if tc.expectedError == "" {
				assert.NoError(err)
				return
			}
			assert.EqualError(err, tc.expectedError)
		})
	}
}
