package repository

import (
	"bytes"
	"path/filepath"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/chai-ledger/internal/domain"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// fileDocument espelha o layout do arquivo de dados (offices e tea_entries)
type fileDocument struct {
	Offices         []fileOffice `json:"offices" yaml:"offices"`
	Entries         []fileEntry  `json:"tea_entries" yaml:"tea_entries"`
	InvoiceSequence int          `json:"invoice_sequence,omitempty" yaml:"invoice_sequence,omitempty"`
}

type fileOffice struct {
	Name    string `json:"Name" yaml:"Name"`
	Mobile  string `json:"Mobile" yaml:"Mobile"`
	Address string `json:"Address" yaml:"Address"`
}

type fileEntry struct {
	ID          string       `json:"ID,omitempty" yaml:"ID,omitempty"`
	OfficeName  string       `json:"OfficeName" yaml:"OfficeName"`
	TeaCount    fileQuantity `json:"TeaCount" yaml:"TeaCount"`
	CoffeeCount fileQuantity `json:"CoffeeCount" yaml:"CoffeeCount"`
	TeaPrice    fileMoney    `json:"TeaPrice" yaml:"TeaPrice"`
	CoffeePrice fileMoney    `json:"CoffeePrice" yaml:"CoffeePrice"`
	TotalAmount fileMoney    `json:"TotalAmount" yaml:"TotalAmount"`
	Date        domain.Date  `json:"Date" yaml:"Date"`
}

// fileQuantity aceita números com fração, strings e nulos; valores inválidos viram zero
type fileQuantity int

func parseQuantity(raw string) int {
	raw = strings.Trim(strings.TrimSpace(raw), `"`)
	if raw == "" || raw == "null" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return domain.CoerceQuantity(v)
}

func (q fileQuantity) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(q))), nil
}

func (q *fileQuantity) UnmarshalJSON(data []byte) error {
	*q = fileQuantity(parseQuantity(string(data)))
	return nil
}

func (q fileQuantity) MarshalYAML() (any, error) {
	return int(q), nil
}

func (q *fileQuantity) UnmarshalYAML(node *yaml.Node) error {
	*q = fileQuantity(parseQuantity(node.Value))
	return nil
}

// fileMoney grava valores monetários como números sem perder precisão
type fileMoney struct {
	decimal.Decimal
}

func parseMoney(raw string) (decimal.Decimal, error) {
	raw = strings.Trim(strings.TrimSpace(raw), `"`)
	switch strings.ToLower(raw) {
	case "", "null", "nan":
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}

func (m fileMoney) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.String()), nil
}

func (m *fileMoney) UnmarshalJSON(data []byte) error {
	d, err := parseMoney(string(data))
	if err != nil {
		return errors.Wrapf(err, "valor monetário inválido %s", data)
	}
	m.Decimal = d
	return nil
}

func (m fileMoney) MarshalYAML() (any, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: m.Decimal.String()}, nil
}

func (m *fileMoney) UnmarshalYAML(node *yaml.Node) error {
	d, err := parseMoney(node.Value)
	if err != nil {
		return errors.Wrapf(err, "valor monetário inválido %q", node.Value)
	}
	m.Decimal = d
	return nil
}

func toDocument(ledger domain.Ledger) fileDocument {
	doc := fileDocument{
		Offices:         make([]fileOffice, 0, len(ledger.Offices)),
		Entries:         make([]fileEntry, 0, len(ledger.Orders)),
		InvoiceSequence: ledger.InvoiceSequence,
	}

	for _, o := range ledger.Offices {
		doc.Offices = append(doc.Offices, fileOffice{Name: o.Name, Mobile: o.Mobile, Address: o.Address})
	}

	for _, o := range ledger.Orders {
		doc.Entries = append(doc.Entries, fileEntry{
			ID:          o.ID,
			OfficeName:  o.OfficeName,
			TeaCount:    fileQuantity(o.TeaCount),
			CoffeeCount: fileQuantity(o.CoffeeCount),
			TeaPrice:    fileMoney{o.TeaPrice},
			CoffeePrice: fileMoney{o.CoffeePrice},
			TotalAmount: fileMoney{o.TotalAmount},
			Date:        o.Date,
		})
	}

	return doc
}

// fromDocument mantém o TotalAmount gravado, mesmo que divirja dos preços
func fromDocument(doc fileDocument) domain.Ledger {
	ledger := domain.Ledger{
		Offices:         make([]domain.Office, 0, len(doc.Offices)),
		Orders:          make([]domain.Order, 0, len(doc.Entries)),
		InvoiceSequence: doc.InvoiceSequence,
	}

	for _, o := range doc.Offices {
		ledger.Offices = append(ledger.Offices, domain.Office{Name: o.Name, Mobile: o.Mobile, Address: o.Address})
	}

	for _, e := range doc.Entries {
		ledger.Orders = append(ledger.Orders, domain.Order{
			ID:          e.ID,
			OfficeName:  e.OfficeName,
			TeaCount:    int(e.TeaCount),
			CoffeeCount: int(e.CoffeeCount),
			TeaPrice:    e.TeaPrice.Decimal,
			CoffeePrice: e.CoffeePrice.Decimal,
			TotalAmount: e.TotalAmount.Decimal,
			Date:        e.Date,
		})
	}

	return ledger
}

type codec interface {
	encode(doc fileDocument) ([]byte, error)
	decode(data []byte, doc *fileDocument) error
}

type jsonCodec struct{}

func (jsonCodec) encode(doc fileDocument) ([]byte, error) {
	return json.MarshalIndent(doc, "", "    ")
}

func (jsonCodec) decode(data []byte, doc *fileDocument) error {
	return json.Unmarshal(data, doc)
}

type yamlCodec struct{}

func (yamlCodec) encode(doc fileDocument) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (yamlCodec) decode(data []byte, doc *fileDocument) error {
	return yaml.Unmarshal(data, doc)
}

func codecFor(path string) codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlCodec{}
	default:
		return jsonCodec{}
	}
}
