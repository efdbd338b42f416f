package contact

import (
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBody(t *testing.T) {
	form := http.Header{"Content-Type": []string{"application/x-www-form-urlencoded"}}

	tests := []struct {
		name string
		req  Request
		want Submission
	}{
		{
			name: "json",
			req:  Request{Body: `{"name":"Ana","email":"ana@test.com","message":"Hola","language":"es"}`},
			want: Submission{Name: "Ana", Email: "ana@test.com", Message: "Hola", Language: Spanish},
		},
		{
			name: "json default language",
			req:  Request{Body: `{"name":"Ana","email":"ana@test.com","message":"Hola"}`},
			want: Submission{Name: "Ana", Email: "ana@test.com", Message: "Hola", Language: English},
		},
		{
			name: "json scalar values",
			req:  Request{Body: `{"name":42,"email":"a@b.co","message":true,"language":null}`},
			want: Submission{Name: "42", Email: "a@b.co", Message: "true", Language: English},
		},
		{
			name: "json falsy values",
			req:  Request{Body: `{"name":0,"email":false,"message":{"x":1}}`},
			want: Submission{Language: English},
		},
		{
			name: "form",
			req:  Request{Headers: form, Body: "name=Ana+Mar%C3%ADa&email=ana%40test.com&message=hi&language=es"},
			want: Submission{Name: "Ana María", Email: "ana@test.com", Message: "hi", Language: Spanish},
		},
		{
			name: "form last value wins",
			req:  Request{Headers: form, Body: "name=first&name=second"},
			want: Submission{Name: "second", Language: English},
		},
		{
			name: "base64 json",
			req: Request{
				Body:            base64.StdEncoding.EncodeToString([]byte(`{"name":"Ana","email":"ana@test.com","message":"Hola"}`)),
				IsBase64Encoded: true,
			},
			want: Submission{Name: "Ana", Email: "ana@test.com", Message: "Hola", Language: English},
		},
		{
			name: "base64 form",
			req: Request{
				Headers:         form,
				Body:            base64.StdEncoding.EncodeToString([]byte("name=Ana&email=ana%40test.com&message=Hola")),
				IsBase64Encoded: true,
			},
			want: Submission{Name: "Ana", Email: "ana@test.com", Message: "Hola", Language: English},
		},
		{
			name: "unpadded base64 json",
			req: Request{
				Body:            base64.RawStdEncoding.EncodeToString([]byte(`{"name":"Ana","email":"ana@test.com","message":"Hi"}`)),
				IsBase64Encoded: true,
			},
			want: Submission{Name: "Ana", Email: "ana@test.com", Message: "Hi", Language: English},
		},
		{
			name: "bad base64",
			req:  Request{Body: "%%%not-base64", IsBase64Encoded: true},
			want: Submission{Language: English},
		},
		{
			name: "form body without form header",
			req:  Request{Body: "name=Ana&email=ana%40test.com&message=Hola"},
			want: Submission{Language: English},
		},
		{
			name: "empty",
			req:  Request{},
			want: Submission{Language: English},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseBody(tt.req))
		})
	}
}
