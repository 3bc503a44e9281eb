package coach

import (
	_ "embed"
	"fmt"
	"strings"
)

// Prompt templates are static data keyed by task kind; parameters are
// substituted with a plain replacer, never concatenated per call site.
var (
	//go:embed prompts/review.txt
	promptReview string
	//go:embed prompts/ats.txt
	promptATS string
	//go:embed prompts/job_match.txt
	promptJobMatch string
	//go:embed prompts/rewrite.txt
	promptRewrite string
	//go:embed prompts/email.txt
	promptEmail string
	//go:embed prompts/questions.txt
	promptQuestions string
	//go:embed prompts/answer_template.txt
	promptAnswerTemplate string
	//go:embed prompts/career_paths.txt
	promptCareerPaths string
	//go:embed prompts/projects.txt
	promptProjects string
	//go:embed prompts/mini_course.txt
	promptMiniCourse string
	//go:embed prompts/interview_review.txt
	promptInterviewReview string
)

var promptTemplates = map[Task]string{
	TaskReview:          promptReview,
	TaskATS:             promptATS,
	TaskJobMatch:        promptJobMatch,
	TaskRewrite:         promptRewrite,
	TaskEmail:           promptEmail,
	TaskQuestions:       promptQuestions,
	TaskAnswerTemplate:  promptAnswerTemplate,
	TaskCareerPaths:     promptCareerPaths,
	TaskProjects:        promptProjects,
	TaskMiniCourse:      promptMiniCourse,
	TaskInterviewReview: promptInterviewReview,
}

// BuildPrompt assembles the natural-language prompt for a task.
func BuildPrompt(task Task, params Params) (string, error) {
	template, ok := promptTemplates[task]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTask, task)
	}
	replacer := strings.NewReplacer(
		"{{RESUME_TEXT}}", params.ResumeText,
		"{{JOB_DESCRIPTION}}", params.JobDescription,
		"{{EMAIL_TYPE}}", params.EmailType,
		"{{CONTEXT}}", params.Context,
		"{{QUESTION}}", params.Question,
		"{{TRANSCRIPT}}", params.Transcript,
	)
	return replacer.Replace(template), nil
}

// FormatTranscript renders answered questions in the Q/A form the
// interview-review prompt expects.
func FormatTranscript(history []QA) string {
	var b strings.Builder
	for i, qa := range history {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Q: ")
		b.WriteString(qa.Question)
		b.WriteString("\nA: ")
		b.WriteString(qa.Answer)
	}
	return b.String()
}
