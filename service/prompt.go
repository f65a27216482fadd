package service

// Prompt builders are pure string mappings with no I/O. They do not truncate
// input; any length limits are the caller's concern.

// SummarizePrompt asks for a plain-English summary of a legal document
func SummarizePrompt(text string) string {
	return "Please provide a comprehensive summary of the following legal document in plain English. " +
		"Focus on the main purpose, key parties, important terms, and significant obligations or rights. " +
		"Make it accessible to someone without legal training:\n\n" + text
}

// ExtractClausesPrompt asks for key clauses formatted as a JSON array
func ExtractClausesPrompt(text string) string {
	return "Analyze the following legal document and extract key clauses. " +
		"For each clause, provide: 1) Clause type (e.g., 'Payment Terms', 'Termination', 'Liability', etc.), " +
		"2) The exact text of the clause, 3) A plain English explanation, 4) Importance level (LOW/MEDIUM/HIGH/CRITICAL). " +
		"Format as JSON array with fields: clauseType, clauseText, explanation, importance.\n\n" + text
}

// AnswerQuestionPrompt asks for an answer grounded only in the document
func AnswerQuestionPrompt(question, text string) string {
	return "Based on the following legal document, please answer this question: " + question +
		"\n\nProvide a clear, accurate answer based only on the information in the document. " +
		"If the answer is not found in the document, please state that clearly.\n\n" +
		"Document content:\n" + text
}

// GenerateTemplatePrompt asks for a document template with bracketed
// placeholders and a legal-review disclaimer
func GenerateTemplatePrompt(templateType, requirements string) string {
	return "Generate a simple legal " + templateType + " template based on these requirements: " +
		requirements + "\n\n" +
		"Please provide a basic template with placeholder fields marked in [BRACKETS]. " +
		"Include standard clauses appropriate for this type of document. " +
		"Add a disclaimer that this is a basic template and legal review is recommended."
}
