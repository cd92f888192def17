package fields

// Section ids.
const (
	SectionPersonal       = "personal"
	SectionSkills         = "skills"
	SectionExperience     = "experience"
	SectionEducation      = "education"
	SectionProjects       = "projects"
	SectionInternProjects = "intern-projects"
	SectionExtras         = "extras"
)

var projectSubFields = []SubField{
	{Name: "title", Key: "proj-title", Label: "Project Title", Placeholder: "Project Name", Fallback: "Project Title"},
	{Name: "description", Key: "proj-desc", Label: "Description & Tools", Placeholder: "Describe what you built...", Fallback: "Project description...", Multiline: true},
}

// Default returns the registry of the standard CV layout.
func Default() *Registry {
	simple := []SimpleField{
		{ID: "full-name", Target: "cv-name", Placeholder: "Your Name", Kind: KindText, Section: SectionPersonal},
		{ID: "email", Target: "cv-email", Placeholder: "email@example.com", Kind: KindEmail, Section: SectionPersonal},
		{ID: "phone", Target: "cv-phone", Placeholder: "+1 234 567 890", Kind: KindPhone, Section: SectionPersonal},
		{ID: "location", Target: "cv-location", Placeholder: "City, Country", Kind: KindLocation, Section: SectionPersonal},
		{ID: "linkedin", Target: "cv-links", Placeholder: "linkedin.com/in/username", Kind: KindLink, Section: SectionPersonal},
		{ID: "summary", Target: "cv-summary", Placeholder: "A short professional summary.", Kind: KindText, Section: SectionPersonal},
		{ID: "certs", Target: "cv-certs", Kind: KindLines, Section: SectionExtras},
		{ID: "achievements", Target: "cv-achievements", Kind: KindLines, Section: SectionExtras},
	}

	skills := []SkillField{
		{ID: "tech-languages", Label: "Languages", Target: "cv-languages", Container: "group-languages", Section: SectionSkills},
		{ID: "tech-backend", Label: "Backend", Target: "cv-backend", Container: "group-backend", Section: SectionSkills},
		{ID: "tech-frontend", Label: "Frontend", Target: "cv-frontend", Container: "group-frontend", Section: SectionSkills},
		{ID: "tech-iot", Label: "IoT", Target: "cv-iot", Container: "group-iot", Section: SectionSkills},
		{ID: "tech-tools", Label: "Tools", Target: "cv-tools", Container: "group-tools", Section: SectionSkills},
		{ID: "tech-ai", Label: "AI / ML", Target: "cv-ai", Container: "group-ai", Section: SectionSkills},
	}

	groups := []GroupSchema{
		{
			Name:    GroupExperience,
			Title:   "Experience",
			Preview: "cv-experience-list",
			Section: SectionExperience,
			Layout:  LayoutExperience,
			SubFields: []SubField{
				{Name: "role", Key: "exp-role", Label: "Role / Job Title", Placeholder: "Software Developer Intern", Fallback: "Role"},
				{Name: "company", Key: "exp-company", Label: "Company & Location", Placeholder: "Tech Corp", Fallback: "Company"},
				{Name: "duration", Key: "exp-duration", Label: "Duration", Placeholder: "Jan 2024 - Present", Fallback: "Duration"},
				{Name: "description", Key: "exp-desc", Label: "Achievements (One per line)", Placeholder: "Developed X...", Fallback: "Description", Multiline: true},
			},
		},
		{
			Name:    GroupEducation,
			Title:   "Education",
			Preview: "cv-education-list",
			Section: SectionEducation,
			Layout:  LayoutEducation,
			SubFields: []SubField{
				{Name: "degree", Key: "edu-degree", Label: "Degree / Qualification", Placeholder: "B.Tech", Fallback: "Degree Name"},
				{Name: "school", Key: "edu-school", Label: "School / University", Placeholder: "University", Fallback: "University Name"},
				{Name: "year", Key: "edu-year", Label: "Year / Duration", Placeholder: "2021-2025", Fallback: "Year"},
				{Name: "gpa", Key: "edu-gpa", Label: "GPA / Percentage", Placeholder: "8.5 CGPA", Fallback: "GPA"},
			},
		},
		{
			Name:      GroupProjects,
			Title:     "Projects",
			Preview:   "cv-projects-list",
			Section:   SectionProjects,
			Layout:    LayoutProject,
			SubFields: projectSubFields,
		},
		{
			Name:      GroupInternProjects,
			Title:     "Internship Projects",
			Preview:   "cv-intern-projects-list",
			Section:   SectionInternProjects,
			Layout:    LayoutProject,
			SubFields: projectSubFields,
		},
	}

	sections := []Section{
		{ID: SectionPersonal, Title: "Personal Information"},
		{ID: SectionSkills, Title: "Technical Skills"},
		{ID: SectionExperience, Title: "Experience"},
		{ID: SectionEducation, Title: "Education"},
		{ID: SectionProjects, Title: "Projects"},
		{ID: SectionInternProjects, Title: "Internship Projects"},
		{ID: SectionExtras, Title: "Certifications & Achievements"},
	}

	return New(simple, skills, groups, sections)
}
