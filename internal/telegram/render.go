package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/abhisek/mates/internal/exercise"
	"github.com/abhisek/mates/internal/gamification"
	"github.com/abhisek/mates/internal/session"
)

const helpText = `Comandos:
/start - Empezar
/menu - Elegir qué practicar
/pista - Ver la pista del ejercicio
/progreso - Ver tu nivel y tu racha
/nombre <apodo> - Cambiar tu apodo

Para responder, escribe tu respuesta sin ningún comando.`

// categoryKeyboard lays the categories out two per row.
func categoryKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, c := range exercise.Categories() {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(c.Label(), callbackCategory+string(c)))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func exerciseText(ex *exercise.Exercise) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📝 %s\n\n%s", ex.Category.Label(), ex.Question)
	if ex.Context != "" {
		fmt.Fprintf(&b, "\n\n«%s»", ex.Context)
	}
	if ex.Hint != "" {
		b.WriteString("\n\n(Escribe /pista si necesitas ayuda)")
	}
	return b.String()
}

func feedbackText(sub *session.Submission) string {
	var b strings.Builder
	res := sub.Result
	if res.Correct {
		b.WriteString("✅ ¡Muy bien!\n\n")
	} else {
		b.WriteString("🔎 Vamos a revisarlo\n\n")
	}
	b.WriteString(res.Feedback)
	if res.Correction != "" {
		fmt.Fprintf(&b, "\n\nSolución sugerida: %s", res.Correction)
	}

	out := sub.Outcome
	if out.Awarded > 0 {
		fmt.Fprintf(&b, "\n\n+%d XP", out.Awarded)
	}
	if out.LeveledUp {
		fmt.Fprintf(&b, "\n🎉 ¡Has subido al nivel %d!", out.Level)
	}
	if out.StreakMilestone {
		fmt.Fprintf(&b, "\n🔥 ¡Racha de %d aciertos seguidos!", out.Streak)
	}
	return b.String()
}

func progressText(s gamification.State) string {
	in, span := s.LevelProgress()
	name := s.Nickname
	if name == "" {
		name = "Sin apodo"
	}
	return fmt.Sprintf("👤 %s\n⭐ Nivel %d (%d/%d XP)\n🏆 %d XP en total\n🔥 Racha: %d", name, s.Level, in, span, s.XP, s.Streak)
}
