// Package csvimport lee exportaciones CSV de clientes (Excel, otros programas de facturación)
// y las convierte en peticiones de alta.
package csvimport

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/facturio/facturio-api/internal/application/dto"
)

// Codificaciones aceptadas.
const (
	EncodingAuto   = "auto"
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "latin1"
)

// ErrNoNameColumn la cabecera no tiene columna de nombre.
var ErrNoNameColumn = errors.New("csvimport: falta la columna de nombre")

// RowError fila descartada y motivo. Line cuenta desde 1 e incluye la cabecera.
type RowError struct {
	Line   int
	Reason string
}

func (e RowError) Error() string { return fmt.Sprintf("línea %d: %s", e.Line, e.Reason) }

// alias de cabecera (en minúsculas) por campo.
var headerAliases = map[string][]string{
	"name":      {"name", "nom", "nombre", "raison sociale", "client"},
	"email":     {"email", "e-mail", "mail", "courriel", "correo"},
	"address":   {"address", "adresse", "direccion", "dirección"},
	"city":      {"city", "ville", "ciudad"},
	"zipCode":   {"zipcode", "zip", "code postal", "cp", "codigo postal", "código postal"},
	"country":   {"country", "pays", "pais", "país"},
	"tvaNumber": {"tvanumber", "tva", "n° tva", "numéro tva", "vat", "vat number", "nif"},
}

// ParseClients decodifica el contenido y devuelve una petición por fila válida.
// Las filas sin nombre se devuelven en rowErrs; el resto del archivo sigue procesándose.
func ParseClients(content []byte, encoding string) (reqs []dto.CreateClientRequest, rowErrs []RowError, err error) {
	content = bytes.TrimPrefix(content, []byte{0xEF, 0xBB, 0xBF})

	var src io.Reader = bytes.NewReader(content)
	switch strings.ToLower(encoding) {
	case "", EncodingAuto:
		if !utf8.Valid(content) {
			src = transform.NewReader(src, charmap.ISO8859_1.NewDecoder())
		}
	case EncodingUTF8:
	case EncodingLatin1, "iso-8859-1":
		src = transform.NewReader(src, charmap.ISO8859_1.NewDecoder())
	case "windows-1252", "cp1252":
		src = transform.NewReader(src, charmap.Windows1252.NewDecoder())
	default:
		return nil, nil, fmt.Errorf("csvimport: codificación no soportada %q", encoding)
	}

	reader := csv.NewReader(src)
	reader.Comma = detectDelimiter(content)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, ErrNoNameColumn
		}
		return nil, nil, fmt.Errorf("csvimport: leer cabecera: %w", err)
	}
	cols := mapHeader(header)
	if _, ok := cols["name"]; !ok {
		return nil, nil, ErrNoNameColumn
	}

	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Reason: err.Error()})
			continue
		}
		get := func(field string) string {
			i, ok := cols[field]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}
		if isBlank(record) {
			continue
		}
		req := dto.CreateClientRequest{
			Name:      get("name"),
			Email:     strings.ToLower(get("email")),
			Address:   get("address"),
			City:      get("city"),
			ZipCode:   get("zipCode"),
			Country:   strings.ToUpper(get("country")),
			TVANumber: strings.ReplaceAll(get("tvaNumber"), " ", ""),
		}
		if req.Name == "" {
			rowErrs = append(rowErrs, RowError{Line: line, Reason: "nombre vacío"})
			continue
		}
		reqs = append(reqs, req)
	}
	return reqs, rowErrs, nil
}

// detectDelimiter Excel en francés exporta con ';'.
func detectDelimiter(content []byte) rune {
	first := content
	if i := bytes.IndexByte(content, '\n'); i >= 0 {
		first = content[:i]
	}
	if bytes.Count(first, []byte{';'}) > bytes.Count(first, []byte{','}) {
		return ';'
	}
	return ','
}

func mapHeader(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for field, aliases := range headerAliases {
			if _, seen := cols[field]; seen {
				continue
			}
			for _, a := range aliases {
				if h == a {
					cols[field] = i
				}
			}
		}
	}
	return cols
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
