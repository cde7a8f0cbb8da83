package answer

// Fixed user-facing phrases. The no-information wording matches the fallback
// instruction embedded in the prompt template, so retrieval-empty answers
// and model-declared unknowns read the same.
const (
	MsgGenerationFailure = "Je suis désolé, une erreur s'est produite lors du traitement de votre question. Veuillez réessayer."
	MsgNoInformation     = "Je n'ai pas cette information. Veuillez contacter directement la bibliothèque."
	MsgLiveDataNote      = "Note: Ces informations sont récupérées en temps réel depuis les sources officielles."
)
