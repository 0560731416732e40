package req

import (
	"io"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Decode читает JSON тело запроса в T
func Decode[T any](body io.ReadCloser) (T, error) {
	defer body.Close()
	var payload T
	err := json.NewDecoder(body).Decode(&payload)
	return payload, err
}
