package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNaming(t *testing.T) {
	tests := []struct {
		in               string
		export, unexport string
		file             string
	}{
		{"Tags", "Tags", "tags", "tags"},
		{"tagValue", "TagValue", "tagValue", "tag_value"},
		{"PutTagsInput", "PutTagsInput", "putTagsInput", "put_tags_input"},
		{"resource_arn", "ResourceArn", "resourceArn", "resource_arn"},
		{"Type", "Type", "_type", "type"},
		{"ARNList", "ARNList", "arnList", "arn_list"},
		{"HTTPHeaders", "HTTPHeaders", "httpHeaders", "http_headers"},
		{"ID", "ID", "id", "id"},
		{"UserIDs", "UserIDs", "userIDs", "user_ids"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.export, exportName(tt.in))
			assert.Equal(t, tt.unexport, unexportName(tt.in))
			assert.Equal(t, tt.file, fileName(tt.in))
		})
	}

	assert.Empty(t, exportName(""))
	assert.Empty(t, unexportName(""))
}

func TestVariantName(t *testing.T) {
	assert.Equal(t, "Length", variantName("length"))
	assert.Equal(t, "UniqueItems", variantName("uniqueItems"))
	assert.Equal(t, "Pattern", variantName("pattern"))
}

func TestSnake(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Username", "username"},
		{"FullName", "full_name"},
		{"HTTPCode", "http_code"},
		{"UserID", "user_id"},
		{"XMLParser", "xml_parser"},
		{"getHTTPResponse", "get_http_response"},
		{"already_snake", "already_snake"},
		{"A", "a"},
		{"AB", "ab"},
		{"ABC", "abc"},
		{"", ""},
		{"userInfo", "user_info"},
		{"PHBOrg", "phb_org"},
		{"UserIDs", "user_ids"},
		{"Ec2Instance", "ec2_instance"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, snake(tt.input))
		})
	}
}

func TestCamel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"user_info", "userInfo"},
		{"full_name", "fullName"},
		{"user_id", "userID"},
		{"http_code", "httpCode"},
		{"full-admin", "fullAdmin"},
		{"already", "already"},
		{"a", "a"},
		{"user", "user"},
		{"ARNListConstraintViolation", "arnListConstraintViolation"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, camel(tt.input))
		})
	}
}

func TestIsSeparator(t *testing.T) {
	assert.True(t, isSeparator('_'))
	assert.True(t, isSeparator('-'))
	assert.True(t, isSeparator(' '))
	assert.True(t, isSeparator('\t'))
	assert.False(t, isSeparator('a'))
	assert.False(t, isSeparator('1'))
}
