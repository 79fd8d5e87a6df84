package alko

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drinkdex/backend/internal/domain"
)

func TestParsePriceList(t *testing.T) {
	t.Run("scans past preamble rows to the header", func(t *testing.T) {
		data := []byte("Alkon hinnasto 1.9.2026\t\t\t\t\n" +
			"\t\t\t\t\n" +
			"Numero\tNimi\tValmistaja\tPullokoko\tHinta\tTyyppi\tAlkoholi-%\n" +
			"001\tCaptain Morgan Spiced Gold\tDiageo\t0,7 l\t22,49\tRommi\t35,0\n")

		products, err := ParsePriceList(data)
		require.NoError(t, err)
		require.Len(t, products, 1)

		p := products[0]
		assert.Equal(t, "Captain Morgan Spiced Gold", p.Name)
		assert.InDelta(t, 22.49, p.Price, 1e-9)
		assert.InDelta(t, 35.0, p.ABVPercent, 1e-9)
		assert.InDelta(t, 0.7, p.VolumeLiters, 1e-9)
		assert.Equal(t, "rommi", p.Category)
	})

	t.Run("accepts semicolon separated exports", func(t *testing.T) {
		data := []byte("Nimi;Pullokoko;Hinta;Tyyppi;Alkoholi-%\n" +
			"Lagavulin 16;0,7 l;89,90;Viski;43,0\n")

		products, err := ParsePriceList(data)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Lagavulin 16", products[0].Name)
		assert.InDelta(t, 89.90, products[0].Price, 1e-9)
	})

	t.Run("accepts dot decimals and bare volumes", func(t *testing.T) {
		data := []byte("Nimi\tPullokoko\tHinta\tTyyppi\tAlkoholi-%\n" +
			"Test Gin\t0.5\t19.99\tGini\t41.0\n")

		products, err := ParsePriceList(data)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.InDelta(t, 0.5, products[0].VolumeLiters, 1e-9)
		assert.InDelta(t, 19.99, products[0].Price, 1e-9)
	})

	t.Run("drops incomplete rows and keeps the rest", func(t *testing.T) {
		data := []byte("Nimi\tPullokoko\tHinta\tTyyppi\tAlkoholi-%\n" +
			"\t0,7 l\t10,00\tRommi\t40,0\n" +
			"No Price\t0,7 l\t\tRommi\t40,0\n" +
			"Bad Number\t0,7 l\tabc\tRommi\t40,0\n" +
			"Good Rum\t0,7 l\t25,00\tRommi\t40,0\n")

		products, err := ParsePriceList(data)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Good Rum", products[0].Name)
	})

	t.Run("removes exact duplicate rows", func(t *testing.T) {
		data := []byte("Nimi\tPullokoko\tHinta\tTyyppi\tAlkoholi-%\n" +
			"Twin Rum\t0,7 l\t25,00\tRommi\t40,0\n" +
			"Twin Rum\t0,7 l\t25,00\tRommi\t40,0\n" +
			"Twin Rum\t0,5 l\t25,00\tRommi\t40,0\n")

		products, err := ParsePriceList(data)
		require.NoError(t, err)
		assert.Len(t, products, 2)
	})

	t.Run("missing header is an empty dataset", func(t *testing.T) {
		data := []byte("just\tsome\trandom\trows\nwithout\tany\theader\there\n")
		_, err := ParsePriceList(data)
		assert.ErrorIs(t, err, domain.ErrEmptyDataset)
	})

	t.Run("header with no usable rows is an empty dataset", func(t *testing.T) {
		data := []byte("Nimi\tPullokoko\tHinta\tTyyppi\tAlkoholi-%\n" +
			"\t\t\t\t\n")
		_, err := ParsePriceList(data)
		assert.ErrorIs(t, err, domain.ErrEmptyDataset)
	})
}

func TestDetectDelimiter(t *testing.T) {
	tests := []struct {
		name string
		data string
		want rune
	}{
		{"tab separated", "Nimi\tHinta\n", '\t'},
		{"semicolon separated", "Nimi;Hinta\n", ';'},
		{"comma separated", "Nimi,Hinta\n", ','},
		{"tab wins over semicolon", "Nimi\tHinta;Extra\n", '\t'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detectDelimiter([]byte(tt.data)))
		})
	}
}

func TestParseVolume(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"0,75 l", 0.75, true},
		{"1 l", 1, true},
		{"0.33", 0.33, true},
		{"", 0, false},
		{"litra", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseVolume(tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
		if tt.ok {
			assert.InDelta(t, tt.want, got, 1e-9, "input %q", tt.input)
		}
	}
}
