package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Pallet identifiers are the letter P followed by digits ("P100", "p07").
// Comparison is case-insensitive everywhere; the casing the user typed is
// preserved in what gets stored.
var paleteNumeroRe = regexp.MustCompile(`^[Pp]\d+$`)

// GerarPaletesSequencial expands a base identifier into count sequential
// numbers: the base itself, then suffix+1, suffix+2, … The prefix letter
// keeps the casing of the base.
func GerarPaletesSequencial(base string, count int) ([]string, error) {
	base = strings.TrimSpace(base)
	if !paleteNumeroRe.MatchString(base) {
		return nil, &ErroFormatoPalete{Tokens: []string{base}}
	}
	if count <= 0 {
		return nil, &ErroFormatoPalete{Tokens: []string{fmt.Sprintf("%s×%d", base, count)}}
	}

	prefixo := base[:1]
	sufixo, err := strconv.Atoi(base[1:])
	if err != nil {
		// unreachable given the regexp, unless the suffix overflows int
		return nil, &ErroFormatoPalete{Tokens: []string{base}}
	}

	numeros := make([]string, 0, count)
	for i := 0; i < count; i++ {
		numeros = append(numeros, prefixo+strconv.Itoa(sufixo+i))
	}
	return numeros, nil
}

// ParseListaPaletes splits a comma-separated explicit list ("P10, p11, P012"),
// trims whitespace and validates every token. Invalid tokens are all named in
// the returned error; valid input keeps its original casing.
func ParseListaPaletes(texto string) ([]string, error) {
	partes := strings.Split(texto, ",")
	numeros := make([]string, 0, len(partes))
	var invalidos []string
	for _, p := range partes {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !paleteNumeroRe.MatchString(p) {
			invalidos = append(invalidos, p)
			continue
		}
		numeros = append(numeros, p)
	}
	if len(invalidos) > 0 {
		return nil, &ErroFormatoPalete{Tokens: invalidos}
	}
	if len(numeros) == 0 {
		return nil, &ErroFormatoPalete{Tokens: []string{texto}}
	}
	return numeros, nil
}

// ResolverPaletes turns a draft row's pallet specification into the final
// identifier list: a comma means an explicit list, otherwise sequential
// generation from the base.
func ResolverPaletes(spec string, numPaletes int) ([]string, error) {
	if strings.Contains(spec, ",") {
		return ParseListaPaletes(spec)
	}
	return GerarPaletesSequencial(spec, numPaletes)
}

// lowerAll returns the case-normalized forms used for duplicate comparison.
func lowerAll(numeros []string) []string {
	out := make([]string, len(numeros))
	for i, n := range numeros {
		out[i] = strings.ToLower(n)
	}
	return out
}

// ProximoNumeroPalete suggests max numeric suffix + 1 over the stored "P…"
// numbers, or "P1" when none exist yet.
func ProximoNumeroPalete(existentes []string) string {
	max := 0
	encontrado := false
	for _, n := range existentes {
		if len(n) < 2 || (n[0] != 'P' && n[0] != 'p') {
			continue
		}
		v, err := strconv.Atoi(n[1:])
		if err != nil {
			continue
		}
		encontrado = true
		if v > max {
			max = v
		}
	}
	if !encontrado {
		return "P1"
	}
	return "P" + strconv.Itoa(max+1)
}
