package model

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

const DefaultDepartment = "General Studies"

var DepartmentOptions = []string{
	"General Studies",
	"Engineering & Computer Science",
	"Business & Economics",
	"Design & Creative Arts",
	"Health & Life Sciences",
	"Social Sciences & Humanities",
}

func ValidDepartment(department string) bool {
	for _, option := range DepartmentOptions {
		if option == department {
			return true
		}
	}
	return false
}

// Profile is the authenticated user's profile as returned by the backend.
// It is always populated as a whole from a single backend response.
type Profile struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	Name            string `json:"name"`
	Role            string `json:"role"`
	Department      string `json:"department"`
	SkillLevel      string `json:"skill_level,omitempty"`
	CreatedAt       string `json:"created_at,omitempty"`
	ThemePreference string `json:"theme_preference,omitempty"`
	AvatarURL       string `json:"avatar_url,omitempty"`
}

type Bookmark struct {
	ID          string                 `json:"id"`
	Type        string                 `json:"type"`
	Title       string                 `json:"title"`
	Subtitle    string                 `json:"subtitle"`
	Notes       string                 `json:"notes"`
	Link        string                 `json:"link"`
	FlashcardID string                 `json:"flashcard_id,omitempty"`
	CreatedAt   string                 `json:"created_at,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}
