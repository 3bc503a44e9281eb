package coach

// Task identifies one of the fixed AI-orchestrated operations. Each task has
// one prompt template and one expected result shape.
type Task string

const (
	TaskReview          Task = "review"
	TaskATS             Task = "ats"
	TaskJobMatch        Task = "job_match"
	TaskRewrite         Task = "rewrite"
	TaskEmail           Task = "email"
	TaskQuestions       Task = "questions"
	TaskAnswerTemplate  Task = "answer_template"
	TaskCareerPaths     Task = "career_paths"
	TaskProjects        Task = "projects"
	TaskMiniCourse      Task = "mini_course"
	TaskInterviewReview Task = "interview_review"
)

// Params carries the inputs a prompt template may reference. Unused fields
// are ignored by tasks that do not need them.
type Params struct {
	ResumeText     string
	JobDescription string
	EmailType      string
	Context        string
	Question       string
	Transcript     string
}

// QA is one answered interview question, used to build review transcripts.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// KnownTask reports whether t is one of the supported task kinds.
func KnownTask(t Task) bool {
	_, ok := shapes[t]
	return ok
}
