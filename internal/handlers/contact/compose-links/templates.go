package composelinks

import "strings"

// messages holds the outreach copy for one language. Every format verb is a
// %[n]s index: 1 contact name, 2 client, 3 organization, 4 sender team.
type messages struct {
	EmailSubject    string
	EmailBody       string
	TeamsSubject    string
	TeamsBody       string
	WhatsApp        string
	CalendarTitle   string
	CalendarDetails string
	ClientFallback  string
}

const defaultLanguage = "en"

var templates = map[string]messages{
	"en": {
		EmailSubject:    "%[3]s Solutions Briefing - %[2]s",
		EmailBody:       "Dear %[1]s,\n\nThank you for your interest in %[3]s solutions. We've completed a comprehensive analysis for %[2]s and would love to discuss our findings.\n\nKey highlights:\n• Tailored solution recommendations\n• Compatibility analysis\n• Implementation roadmap\n\nWould you be available for a meeting this week?\n\nBest regards,\n%[4]s",
		TeamsSubject:    "%[3]s Solutions Discussion - %[2]s",
		TeamsBody:       "Hi %[1]s,\n\nI'd like to schedule a meeting to discuss %[3]s solutions tailored for %[2]s.\n\nBased on our analysis, I believe we have some valuable insights to share.\n\nBest regards",
		WhatsApp:        "Hi %[1]s! I've completed the %[3]s solutions analysis for %[2]s. Can we schedule a quick call to discuss the findings?",
		CalendarTitle:   "%[3]s Consultation Call - %[2]s",
		CalendarDetails: "Discussion about %[3]s solutions for %[2]s",
		ClientFallback:  "your organization",
	},
	"es": {
		EmailSubject:    "Informe de soluciones %[3]s - %[2]s",
		EmailBody:       "Estimado/a %[1]s,\n\nGracias por su interés en las soluciones de %[3]s. Hemos completado un análisis detallado para %[2]s y nos encantaría comentar los resultados.\n\nPuntos clave:\n• Recomendaciones de soluciones a medida\n• Análisis de compatibilidad\n• Hoja de ruta de implementación\n\n¿Tendría disponibilidad para una reunión esta semana?\n\nSaludos cordiales,\n%[4]s",
		TeamsSubject:    "Conversación sobre soluciones %[3]s - %[2]s",
		TeamsBody:       "Hola %[1]s,\n\nMe gustaría programar una reunión para hablar de las soluciones de %[3]s pensadas para %[2]s.\n\nSaludos",
		WhatsApp:        "¡Hola %[1]s! He completado el análisis de soluciones %[3]s para %[2]s. ¿Podemos agendar una llamada breve?",
		CalendarTitle:   "Llamada de consultoría %[3]s - %[2]s",
		CalendarDetails: "Conversación sobre soluciones %[3]s para %[2]s",
		ClientFallback:  "su organización",
	},
	"fr": {
		EmailSubject:    "Briefing solutions %[3]s - %[2]s",
		EmailBody:       "Bonjour %[1]s,\n\nMerci de votre intérêt pour les solutions %[3]s. Nous avons réalisé une analyse complète pour %[2]s et serions ravis d'en discuter avec vous.\n\nPoints clés :\n• Recommandations de solutions sur mesure\n• Analyse de compatibilité\n• Feuille de route de mise en œuvre\n\nSeriez-vous disponible pour une réunion cette semaine ?\n\nCordialement,\n%[4]s",
		TeamsSubject:    "Échange sur les solutions %[3]s - %[2]s",
		TeamsBody:       "Bonjour %[1]s,\n\nJe souhaiterais organiser une réunion pour présenter les solutions %[3]s adaptées à %[2]s.\n\nCordialement",
		WhatsApp:        "Bonjour %[1]s ! J'ai terminé l'analyse des solutions %[3]s pour %[2]s. Pouvons-nous prévoir un court appel ?",
		CalendarTitle:   "Appel de conseil %[3]s - %[2]s",
		CalendarDetails: "Échange sur les solutions %[3]s pour %[2]s",
		ClientFallback:  "votre organisation",
	},
	"de": {
		EmailSubject:    "%[3]s Lösungs-Briefing - %[2]s",
		EmailBody:       "Guten Tag %[1]s,\n\nvielen Dank für Ihr Interesse an %[3]s Lösungen. Wir haben eine umfassende Analyse für %[2]s erstellt und würden die Ergebnisse gern mit Ihnen besprechen.\n\nSchwerpunkte:\n• Passende Lösungsempfehlungen\n• Kompatibilitätsanalyse\n• Umsetzungsfahrplan\n\nHätten Sie diese Woche Zeit für ein Gespräch?\n\nMit freundlichen Grüßen\n%[4]s",
		TeamsSubject:    "%[3]s Lösungsgespräch - %[2]s",
		TeamsBody:       "Hallo %[1]s,\n\nich würde gern ein Meeting vereinbaren, um %[3]s Lösungen für %[2]s zu besprechen.\n\nViele Grüße",
		WhatsApp:        "Hallo %[1]s! Ich habe die %[3]s Lösungsanalyse für %[2]s abgeschlossen. Können wir kurz telefonieren?",
		CalendarTitle:   "%[3]s Beratungsgespräch - %[2]s",
		CalendarDetails: "Gespräch über %[3]s Lösungen für %[2]s",
		ClientFallback:  "Ihr Unternehmen",
	},
	"pt": {
		EmailSubject:    "Briefing de soluções %[3]s - %[2]s",
		EmailBody:       "Prezado(a) %[1]s,\n\nObrigado pelo seu interesse nas soluções %[3]s. Concluímos uma análise completa para %[2]s e gostaríamos de discutir os resultados.\n\nDestaques:\n• Recomendações de soluções sob medida\n• Análise de compatibilidade\n• Roteiro de implementação\n\nTeria disponibilidade para uma reunião esta semana?\n\nAtenciosamente,\n%[4]s",
		TeamsSubject:    "Conversa sobre soluções %[3]s - %[2]s",
		TeamsBody:       "Olá %[1]s,\n\nGostaria de agendar uma reunião para falar sobre soluções %[3]s para %[2]s.\n\nAtenciosamente",
		WhatsApp:        "Olá %[1]s! Concluí a análise de soluções %[3]s para %[2]s. Podemos marcar uma ligação rápida?",
		CalendarTitle:   "Chamada de consultoria %[3]s - %[2]s",
		CalendarDetails: "Conversa sobre soluções %[3]s para %[2]s",
		ClientFallback:  "sua organização",
	},
}

// templatesFor falls back to English for unknown or empty languages. Region
// suffixes such as "pt-BR" use the base language.
func templatesFor(language string) (messages, string) {
	lang := strings.ToLower(strings.TrimSpace(language))
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	if m, ok := templates[lang]; ok {
		return m, lang
	}
	return templates[defaultLanguage], defaultLanguage
}
