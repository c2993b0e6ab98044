package room

import (
	"fmt"

	"wordparty/internal/content"
)

// User-facing announcements, localized per room language.

func msgLanguageChanged(lang content.Language) string {
	if lang == content.LangSpanish {
		return "Idioma cambiado a Español"
	}
	return "Language changed to English"
}

func msgModeSwitched(lang content.Language, mode content.Mode) string {
	if lang == content.LangSpanish {
		label := "Palabras"
		if mode == content.ModeIdioms {
			label = "Refranes & Dichos"
		}
		return fmt.Sprintf("Modo de juego cambiado a %s", label)
	}
	label := "Words"
	if mode == content.ModeIdioms {
		label = "Idioms & Proverbs"
	}
	return fmt.Sprintf("Game mode switched to %s", label)
}

func msgNewGame(lang content.Language, winnerName string) string {
	if lang == content.LangSpanish {
		if winnerName != "" {
			return fmt.Sprintf("¡Nuevo juego comenzado! El ganador de la ronda anterior fue %s", winnerName)
		}
		return "¡Nuevo juego comenzado!"
	}
	if winnerName != "" {
		return fmt.Sprintf("New game started! The winner of the previous round was %s", winnerName)
	}
	return "New game started!"
}
