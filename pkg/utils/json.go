package utils

import (
	"reflect"
	"unsafe"

	jsoniter "github.com/json-iterator/go"
	"github.com/modern-go/reflect2"
	"github.com/shopspring/decimal"
)

// JSON é compatível com encoding/json, mas escreve decimal.Decimal como número.
// A opção vale só para esta configuração; decimal.MarshalJSONWithoutQuotes não é alterado.
var JSON = newJSON()

var json = JSON

func newJSON() jsoniter.API {
	api := jsoniter.Config{
		EscapeHTML:             true,
		SortMapKeys:            true,
		ValidateJsonRawMessage: true,
		// Config distinta da ConfigCompatibleWithStandardLibrary: o cache do
		// MarshalIndent é por Config e perderia a extensão
		TagKey: "json",
	}.Froze()
	api.RegisterExtension(&decimalExtension{})
	return api
}

var decimalType = reflect.TypeOf(decimal.Decimal{})

type decimalExtension struct {
	jsoniter.DummyExtension
}

func (e *decimalExtension) CreateEncoder(typ reflect2.Type) jsoniter.ValEncoder {
	if typ.Type1() == decimalType {
		return decimalNumberEncoder{}
	}
	return nil
}

type decimalNumberEncoder struct{}

func (decimalNumberEncoder) IsEmpty(ptr unsafe.Pointer) bool {
	return false
}

func (decimalNumberEncoder) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	stream.WriteRaw((*decimal.Decimal)(ptr).String())
}

// PrettyJson indenta qualquer valor ou bloco JSON já serializado
func PrettyJson(in any) (string, error) {
	if raw, ok := in.([]byte); ok {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return "", err
		}
		in = v
	}

	out, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}
