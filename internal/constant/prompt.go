package constant

import "fmt"

const (
	StudyAssistantPromptTemplate = `You are an AI study assistant. Help the student with this question: %s

Please provide:
1. A clear explanation
2. Examples if helpful
3. Related concepts
4. Study tips for this topic

Be encouraging and educational in your response.`

	QuizPromptTemplate = "Create a quiz based on this study material: %s"
)

func StudyAssistantPrompt(question string) string {
	return fmt.Sprintf(StudyAssistantPromptTemplate, question)
}

func QuizPrompt(material string) string {
	return fmt.Sprintf(QuizPromptTemplate, material)
}
