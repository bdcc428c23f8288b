package types

// ResumeProfile is the normalized structured form of a candidate resume,
// produced once by the resume ingestion step and read-only afterwards.
type ResumeProfile struct {
	PersonalInfo   PersonalInfo      `json:"personal_info"`
	Summary        string            `json:"summary,omitempty"`
	Experience     []ExperienceEntry `json:"experience"`
	Education      []EducationEntry  `json:"education"`
	Skills         SkillSet          `json:"skills"`
	Projects       []Project         `json:"projects,omitempty"`
	Certifications []Certification   `json:"certifications,omitempty"`
}

// PersonalInfo holds candidate contact details.
type PersonalInfo struct {
	Name      string          `json:"name,omitempty"`
	Email     string          `json:"email,omitempty"`
	Phone     string          `json:"phone,omitempty"`
	Location  ProfileLocation `json:"location"`
	LinkedIn  string          `json:"linkedin,omitempty"`
	GitHub    string          `json:"github,omitempty"`
	Portfolio string          `json:"portfolio,omitempty"`
}

// ProfileLocation is a coarse city/state/country triple.
type ProfileLocation struct {
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
}

// ExperienceEntry is one professional role on the resume.
type ExperienceEntry struct {
	Company          string   `json:"company"`
	Position         string   `json:"position"`
	Location         string   `json:"location,omitempty"`
	StartDate        string   `json:"start_date,omitempty"` // YYYY-MM
	EndDate          string   `json:"end_date,omitempty"`   // YYYY-MM or "Present"
	Responsibilities []string `json:"responsibilities,omitempty"`
	Technologies     []string `json:"technologies,omitempty"`
}

// EducationEntry is one degree or program on the resume.
type EducationEntry struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	GPA         string `json:"gpa,omitempty"`
}

// SkillSet is the categorized skills taxonomy.
type SkillSet struct {
	Technical            []string `json:"technical,omitempty"`
	ProgrammingLanguages []string `json:"programming_languages,omitempty"`
	Frameworks           []string `json:"frameworks,omitempty"`
	Tools                []string `json:"tools,omitempty"`
	SoftSkills           []string `json:"soft_skills,omitempty"`
}

// Project is a personal or professional project entry.
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	URL          string   `json:"url,omitempty"`
}

// Certification is a professional certification entry.
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
}

// ResumeData is the persisted resume artifact: the raw extracted text, the
// structured profile derived from it, and when it was uploaded.
type ResumeData struct {
	Text       string         `json:"text"`
	Structured *ResumeProfile `json:"structured"`
	UploadedAt string         `json:"uploaded_at"` // RFC3339
}
