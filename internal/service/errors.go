package service

import (
	"errors"
	"fmt"
	"strings"
)

// Typed failures for the intake flow. Handlers map these to HTTP status
// codes; GuardarTudo collects them per row without aborting the batch.

// ErroValidacao rejects an operation locally, naming the offending field.
type ErroValidacao struct {
	Campo   string
	Detalhe string
}

func (e *ErroValidacao) Error() string {
	return fmt.Sprintf("validação falhou em %s: %s", e.Campo, e.Detalhe)
}

// ErroFormatoPalete names every token that does not match the pallet
// identifier pattern (P plus digits), not just the first.
type ErroFormatoPalete struct {
	Tokens []string
}

func (e *ErroFormatoPalete) Error() string {
	return fmt.Sprintf("formato de palete inválido: %s (use formato: P100)", strings.Join(e.Tokens, ", "))
}

// ErroPaleteDuplicada rejects a whole pallet set because one or more numbers
// already exist. No partial set is ever created.
type ErroPaleteDuplicada struct {
	Numeros []string
}

func (e *ErroPaleteDuplicada) Error() string {
	return fmt.Sprintf("número(s) de palete já existente(s): %s", strings.Join(e.Numeros, ", "))
}

// ErroPersistencia wraps a failed remote insert/update/delete. Rows that hit
// it stay in the draft batch for retry.
type ErroPersistencia struct {
	Op  string
	Err error
}

func (e *ErroPersistencia) Error() string {
	return fmt.Sprintf("erro de persistência em %s: %v", e.Op, e.Err)
}

func (e *ErroPersistencia) Unwrap() error { return e.Err }

var (
	// ErrNENaoEncontrada — the external order number matched no header.
	ErrNENaoEncontrada = errors.New("NE não encontrada")
	// ErrNESemLinhas — the order exists but has no line with quantity > 0.
	ErrNESemLinhas = errors.New("NE sem linhas com quantidade positiva")

	ErrBatchNaoEncontrado = errors.New("batch de entradas não encontrado")
	ErrLinhaNaoEncontrada = errors.New("linha de entrada não encontrada")
)
