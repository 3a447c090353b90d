package csvimport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestParseClients_FrenchExcelLatin1(t *testing.T) {
	utf8CSV := "Nom;Courriel;Adresse;Ville;Code postal;Pays;N° TVA\n" +
		"Boulangerie Dupré;Contact@Dupre.FR;3 rue de l'Église;Évreux;27000;fr;FR 12 345678901\n" +
		";sans-nom@example.fr;;;;;\n" +
		";;;;;;\n"
	latin1, err := charmap.ISO8859_1.NewEncoder().String(utf8CSV)
	require.NoError(t, err)

	reqs, rowErrs, err := ParseClients([]byte(latin1), EncodingAuto)
	require.NoError(t, err)

	require.Len(t, reqs, 1)
	assert.Equal(t, "Boulangerie Dupré", reqs[0].Name)
	assert.Equal(t, "contact@dupre.fr", reqs[0].Email)
	assert.Equal(t, "3 rue de l'Église", reqs[0].Address)
	assert.Equal(t, "Évreux", reqs[0].City)
	assert.Equal(t, "27000", reqs[0].ZipCode)
	assert.Equal(t, "FR", reqs[0].Country)
	assert.Equal(t, "FR12345678901", reqs[0].TVANumber)

	require.Len(t, rowErrs, 1)
	assert.Equal(t, 3, rowErrs[0].Line)
}

func TestParseClients_UTF8WithBOMAndCommas(t *testing.T) {
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("name,email,city\n\"Atelier, Martin\",a@b.fr,Lyon\n")...)

	reqs, rowErrs, err := ParseClients(content, EncodingUTF8)
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, reqs, 1)
	assert.Equal(t, "Atelier, Martin", reqs[0].Name)
	assert.Equal(t, "Lyon", reqs[0].City)
}

func TestParseClients_Errors(t *testing.T) {
	_, _, err := ParseClients([]byte("email,city\na@b.fr,Lyon\n"), EncodingAuto)
	assert.ErrorIs(t, err, ErrNoNameColumn)

	_, _, err = ParseClients([]byte(""), EncodingAuto)
	assert.ErrorIs(t, err, ErrNoNameColumn)

	_, _, err = ParseClients([]byte("name\nx\n"), "ebcdic")
	assert.Error(t, err)
}
