package resume

import (
	"fmt"
	"strings"

	"github.com/jonathan/jobscout/internal/types"
)

// ProfileText renders a structured profile back into a flat text block for
// prompting. Sections with no content are omitted.
func ProfileText(p *types.ResumeProfile) string {
	if p == nil {
		return ""
	}

	var b strings.Builder

	if p.PersonalInfo.Name != "" {
		fmt.Fprintf(&b, "%s\n", p.PersonalInfo.Name)
	}
	if p.PersonalInfo.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", p.PersonalInfo.Email)
	}
	if p.PersonalInfo.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", p.PersonalInfo.Phone)
	}
	if loc := locationLine(p.PersonalInfo.Location); loc != "" {
		fmt.Fprintf(&b, "Location: %s\n", loc)
	}
	if p.PersonalInfo.LinkedIn != "" {
		fmt.Fprintf(&b, "LinkedIn: %s\n", p.PersonalInfo.LinkedIn)
	}
	if p.PersonalInfo.GitHub != "" {
		fmt.Fprintf(&b, "GitHub: %s\n", p.PersonalInfo.GitHub)
	}

	if p.Summary != "" {
		fmt.Fprintf(&b, "\nSUMMARY:\n%s\n", p.Summary)
	}

	if len(p.Education) > 0 {
		b.WriteString("\nEDUCATION:\n")
		for _, e := range p.Education {
			fmt.Fprintf(&b, "%s - %s", e.Degree, e.Institution)
			if e.EndDate != "" {
				fmt.Fprintf(&b, " (%s)", e.EndDate)
			}
			b.WriteString("\n")
			if e.GPA != "" {
				fmt.Fprintf(&b, "  GPA: %s\n", e.GPA)
			}
		}
	}

	if len(p.Experience) > 0 {
		b.WriteString("\nPROFESSIONAL EXPERIENCE:\n")
		for _, e := range p.Experience {
			fmt.Fprintf(&b, "%s at %s", e.Position, e.Company)
			if e.StartDate != "" || e.EndDate != "" {
				fmt.Fprintf(&b, " (%s - %s)", e.StartDate, e.EndDate)
			}
			b.WriteString("\n")
			for _, r := range e.Responsibilities {
				fmt.Fprintf(&b, "- %s\n", r)
			}
			if len(e.Technologies) > 0 {
				fmt.Fprintf(&b, "  Technologies: %s\n", strings.Join(e.Technologies, ", "))
			}
		}
	}

	skills := skillLines(p.Skills)
	if len(skills) > 0 {
		b.WriteString("\nTECHNICAL SKILLS:\n")
		for _, line := range skills {
			fmt.Fprintf(&b, "%s\n", line)
		}
	}

	if len(p.Projects) > 0 {
		b.WriteString("\nPROJECTS:\n")
		for _, proj := range p.Projects {
			fmt.Fprintf(&b, "%s", proj.Name)
			if proj.Description != "" {
				fmt.Fprintf(&b, ": %s", proj.Description)
			}
			b.WriteString("\n")
			if len(proj.Technologies) > 0 {
				fmt.Fprintf(&b, "  Technologies: %s\n", strings.Join(proj.Technologies, ", "))
			}
		}
	}

	if len(p.Certifications) > 0 {
		b.WriteString("\nCERTIFICATIONS:\n")
		for _, c := range p.Certifications {
			fmt.Fprintf(&b, "- %s", c.Name)
			if c.Issuer != "" {
				fmt.Fprintf(&b, " (%s)", c.Issuer)
			}
			b.WriteString("\n")
		}
	}

	return strings.TrimSpace(b.String())
}

func locationLine(loc types.ProfileLocation) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{loc.City, loc.State, loc.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func skillLines(s types.SkillSet) []string {
	lines := make([]string, 0, 5)
	add := func(label string, items []string) {
		if len(items) > 0 {
			lines = append(lines, fmt.Sprintf("%s: %s", label, strings.Join(items, ", ")))
		}
	}
	add("Technical", s.Technical)
	add("Programming Languages", s.ProgrammingLanguages)
	add("Frameworks", s.Frameworks)
	add("Tools", s.Tools)
	add("Soft Skills", s.SoftSkills)
	return lines
}
