package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddress_UnmarshalLegacyString(t *testing.T) {
	var u User
	err := json.Unmarshal([]byte(`{"_id":"u1","address":"12 Harbour Rd, Leeds"}`), &u)
	require.NoError(t, err)

	assert.Nil(t, u.Address.Structured)
	assert.Equal(t, "12 Harbour Rd, Leeds", u.Address.String())
}

func TestAddress_UnmarshalStructured(t *testing.T) {
	var u User
	body := `{"_id":"u1","address":{"streetAddress1":"12 Harbour Rd","city":"Leeds","state":"WY","postalCode":"LS1 4AP","country":"UK"}}`
	require.NoError(t, json.Unmarshal([]byte(body), &u))

	require.NotNil(t, u.Address.Structured)
	assert.Equal(t, "12 Harbour Rd, Leeds, WY LS1 4AP, UK", u.Address.String())
}

func TestAddress_NullAndMissing(t *testing.T) {
	var u User
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"u1","address":null}`), &u))
	assert.True(t, u.Address.IsZero())
	assert.Equal(t, "", u.Address.String())

	require.NoError(t, json.Unmarshal([]byte(`{"_id":"u2"}`), &u))
	assert.True(t, u.Address.IsZero())
}

func TestAddress_UnsupportedValue(t *testing.T) {
	var a Address
	assert.Error(t, json.Unmarshal([]byte(`42`), &a))
}

func TestAddress_NormalizeIsIdempotent(t *testing.T) {
	cases := []Address{
		StructuredAddressOf(StructuredAddress{StreetAddress1: "1 Main St", StreetAddress2: "Suite 4", City: "Austin", Country: "US"}),
		StructuredAddressOf(StructuredAddress{}),
		LegacyAddress("  221B Baker Street "),
		{},
	}
	for _, a := range cases {
		once := a.Normalize()
		twice := once.Normalize()
		assert.Equal(t, a.String(), once.String())
		assert.Equal(t, once, twice)
		assert.Equal(t, a.String(), a.String())
	}
}

func TestAddress_MarshalKeepsShape(t *testing.T) {
	b, err := json.Marshal(LegacyAddress("1 Main St"))
	require.NoError(t, err)
	assert.JSONEq(t, `"1 Main St"`, string(b))

	b, err = json.Marshal(StructuredAddressOf(StructuredAddress{City: "Austin"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"city":"Austin"}`, string(b))

	b, err = json.Marshal(Address{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}
