package ai

import (
	"fmt"
	"strings"
)

const counselorSystemPrompt = `You are a career counselor for students in Jammu and Kashmir finishing classes 10 and 12. You help them choose streams, courses, colleges, entrance exams and scholarships.

RULES:
1. Be warm, encouraging and concrete
2. Keep answers short and practical; prefer bullet points
3. When a question concerns admissions or exams, mention the relevant timeline (application windows, counselling rounds)
4. Recommend government options and scholarships available to J&K students when relevant
5. Never invent college names, cutoffs or dates; say so when unsure`

// CounselorSystemPrompt builds the chat system prompt, injecting similar past
// exchanges as advisory context when available.
func CounselorSystemPrompt(similar []Exchange) string {
	if len(similar) == 0 {
		return counselorSystemPrompt
	}
	var sb strings.Builder
	sb.WriteString(counselorSystemPrompt)
	sb.WriteString("\n\nThe student previously asked related questions. Use these exchanges for continuity:\n")
	for i, ex := range similar {
		sb.WriteString(fmt.Sprintf("%d. Q: %s\n   A: %s\n", i+1, ex.Question, ex.Answer))
	}
	return sb.String()
}

const quizGenerationPrompt = `Generate exactly 10 multiple-choice questions for a career aptitude quiz aimed at students in Jammu and Kashmir choosing a stream after class 10/12.

Questions 1-3 probe interests, 4-6 probe strengths, 7-10 probe personality.
Each question has exactly 4 options, and every option is tagged with the stream it favours: one of "science", "commerce", "arts", "vocational".

Respond ONLY with valid JSON in the following format:
[
  {
    "text": "question text",
    "category": "interest|strength|personality",
    "options": [
      {"text": "option text", "stream": "science"}
    ]
  }
]
Do not include any other text or explanation.`

// QuizGenerationPrompt returns the prompt used to generate a personalized
// aptitude quiz.
func QuizGenerationPrompt() string { return quizGenerationPrompt }
