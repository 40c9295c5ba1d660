package problemgen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/mates/internal/exercise"
)

const (
	promptAudience = "para 5º de primaria (10-11 años)"
	promptSuffix   = "Devuelve SOLO el JSON válido."

	reformulateQuestion = "Escribe todas las preguntas que se puedan responder con este enunciado:"
	reformulateHint     = "Piensa en qué datos tienes y qué podrías calcular."
	createHint          = "Usa tu imaginación."
	multiplesHint       = "Recuerda las tablas."
)

// BuildPrompt renders the generation prompt for a model category.
// CategoryRandom and CategoryArithmetic never reach the model and are
// rejected along with unknown categories.
func BuildPrompt(category exercise.Category, in PromptInput) (string, error) {
	var b strings.Builder

	switch category {
	case exercise.CategorySolve:
		fmt.Fprintf(&b, "Genera un problema de matemáticas %s.\n", promptAudience)
		fmt.Fprintf(&b, "TEMA OBLIGATORIO: %s.\n", in.Theme)
		b.WriteString("Requisitos:\n")
		b.WriteString("- LONGITUD: enunciado CORTO y directo (máximo 3 frases).\n")
		b.WriteString("- COMPLEJIDAD: máximo 2 operaciones para resolverlo.\n")
		b.WriteString("- Operaciones permitidas: suma, resta, multiplicación (por 1 o 2 cifras), división (divisor <= 50).\n")
		fmt.Fprintf(&b, "- IMPORTANTE: usa números variados, NO uses siempre los mismos.%s\n", avoidClause(in.AvoidNumbers))
		b.WriteString("- Sin decimales.\n")
		b.WriteString("- Números < 99.999.\n")
		b.WriteString(`Formato JSON: { "type": "solve", "question": "Enunciado del problema", "hint": "Pista sutil" }` + "\n")

	case exercise.CategoryReformulate:
		fmt.Fprintf(&b, "Genera un ejercicio de \"Reformular preguntas\" %s.\n", promptAudience)
		fmt.Fprintf(&b, "TEMA OBLIGATORIO: %s.\n", in.Theme)
		b.WriteString("Da un enunciado de un problema CORTO (2-3 líneas) PERO SIN PREGUNTA.\n")
		b.WriteString("El alumno escribirá todas las preguntas que se puedan responder con esos datos.\n")
		fmt.Fprintf(&b, `Formato JSON: { "type": "reformulate", "question": %q, "context": "El enunciado del problema sin pregunta", "hint": %q }`+"\n",
			reformulateQuestion, reformulateHint)

	case exercise.CategoryCreate:
		fmt.Fprintf(&b, "Genera un ejercicio de \"Inventar problemas\" %s.\n", promptAudience)
		fmt.Fprintf(&b, "Requisito: el problema debe basarse en %s.\n", in.CreateTarget)
		fmt.Fprintf(&b, "TEMA OBLIGATORIO: %s.\n", in.Theme)
		fmt.Fprintf(&b, "IMPORTANTE: VARÍA LOS NÚMEROS.%s Usa números como 125, 840, 1500.\n", avoidClause(in.AvoidNumbers))
		b.WriteString("LONGITUD: pide un enunciado breve.\n")
		b.WriteString("El alumno inventará un enunciado que encaje.\n")
		fmt.Fprintf(&b, `Formato JSON: { "type": "create", "question": "Inventa un problema matemático de %s (breve) que se resuelva con:", "context": "La operación o dato concreto (%s)", "hint": %q }`+"\n",
			in.Theme, in.CreateTarget, createHint)

	case exercise.CategoryMultiples:
		fmt.Fprintf(&b, "Genera un ejercicio de múltiplos y divisores %s.\n", promptAudience)
		b.WriteString("IMPORTANTE: NO incluyas ninguna historia, ni contexto, ni nombres de personajes. SOLO la pregunta matemática directa.\n")
		b.WriteString("Elige ALEATORIAMENTE uno de estos 3 tipos de preguntas:\n")
		b.WriteString("1. \"Escribe todos los divisores de [número entre 10 y 50]\".\n")
		b.WriteString("2. \"Escribe los múltiplos de [número entre 2 y 9] que hay entre [A] y [B]\".\n")
		b.WriteString("3. \"¿Es [número grande] múltiplo de [número pequeño]?\" o \"¿Es [número pequeño] divisor de [número grande]?\".\n")
		fmt.Fprintf(&b, `Formato JSON: { "type": "multiples", "question": "La pregunta directa (ej: Escribe los múltiplos de 8 que hay entre 30 y 70)", "hint": %q }`+"\n",
			multiplesHint)

	case exercise.CategoryMental:
		fmt.Fprintf(&b, "Genera un ejercicio de CÁLCULO MENTAL %s.\n", promptAudience)
		fmt.Fprintf(&b, "ESTRATEGIA ESPECÍFICA: %s.\n", in.Strategy.Name)
		b.WriteString("Requisitos:\n")
		b.WriteString("- SOLO OPERACIONES ARITMÉTICAS.\n")
		b.WriteString("- PROHIBIDO poner enunciados de problemas, historias o contextos.\n")
		b.WriteString("- Formato directo: \"Calcula:\", \"¿Cuánto es...?\" o la operación directamente.\n")
		fmt.Fprintf(&b, "- Usa la estrategia seleccionada (%s).\n", in.Strategy.Name)
		b.WriteString("- VARIEDAD EXTREMA en los números.\n")
		fmt.Fprintf(&b, `Formato JSON: { "type": "mental", "question": "Operación matemática (ej: 450 + 20)", "hint": %q }`+"\n",
			in.Strategy.Hint)

	default:
		return "", fmt.Errorf("%w: no prompt for %q", exercise.ErrUnknownCategory, category)
	}

	b.WriteString("\nPreguntas ya hechas (no las repitas):\n")
	b.WriteString(priorList(in.PriorQuestions))
	fmt.Fprintf(&b, "\n\n(Semilla de aleatoriedad: %d)\n", in.Seed)
	b.WriteString(promptSuffix)

	return b.String(), nil
}

// avoidClause renders " Evita el 35 y el 36." for the given numbers.
func avoidClause(nums []int) string {
	if len(nums) == 0 {
		return ""
	}
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = "el " + strconv.Itoa(n)
	}
	if len(parts) == 1 {
		return " Evita " + parts[0] + "."
	}
	return " Evita " + strings.Join(parts[:len(parts)-1], ", ") + " y " + parts[len(parts)-1] + "."
}
