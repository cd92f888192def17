package builder

import "github.com/jonathan/cv-builder/internal/types"

// SampleSnapshot returns the demo content shown when nothing has been saved yet.
func SampleSnapshot() *types.Snapshot {
	snap := types.NewSnapshot()
	snap.SimpleInputs = map[string]string{
		"full-name": "John Doe",
		"email":     "john.doe@example.com",
		"phone":     "+1 123 456 7890",
		"location":  "City, Country",
		"linkedin":  "linkedin.com/in/johndoe",
		"summary": "Passionate Software Developer with experience in building responsive web applications " +
			"and efficient backend systems. Skilled in React, Node.js, and modern cloud architectures.",

		"tech-languages": "JavaScript, Python, SQL, HTML5, CSS3",
		"tech-backend":   "Node.js, Express, PostgreSQL",
		"tech-frontend":  "React.js, Tailwind CSS, Recharts",
		"tech-iot":       "Arduino, ESP32, IoT Fundamentals",
		"tech-tools":     "Git, GitHub, Docker, AWS",
		"tech-ai":        "Pandas, Scikit-learn, Basic Machine Learning",

		"certs":        "Certified Web Developer - Tech Institute\nCloud Computing Specialist - Cloud Academy",
		"achievements": "Winner - Regional Hackathon 2024\nDean's List for Academic Excellence\nCommunity Open Source Contributor",
	}

	snap.DynamicLists["experience"] = []map[string]string{
		{
			"exp-role":     "Full Stack Developer",
			"exp-company":  "Tech Solutions Inc.",
			"exp-duration": "Jan 2023 - Present",
			"exp-desc": "Developed and maintained scalable web applications using React and Node.js.\n" +
				"Collaborated with cross-functional teams to define project requirements and architecture.\n" +
				"Optimized database queries, reducing response times by 30%.",
		},
		{
			"exp-role":     "Web Development Intern",
			"exp-company":  "Innovate Hub",
			"exp-duration": "June 2022 - Dec 2022",
			"exp-desc": "Assisted in building responsive user interfaces for client dashboards.\n" +
				"Implemented automated testing suites to improve code reliability.\n" +
				"Participated in daily stand-ups and agile development cycles.",
		},
	}
	snap.DynamicLists["education"] = []map[string]string{
		{
			"edu-degree": "Bachelor of Science in Computer Science",
			"edu-school": "State University of Technology",
			"edu-year":   "2019 - 2023",
			"edu-gpa":    "GPA: 3.8/4.0",
		},
	}
	snap.DynamicLists["projects"] = []map[string]string{
		{
			"proj-title": "Portfolio Website",
			"proj-desc":  "Tools: HTML, CSS, JavaScript\nBuilt a personal portfolio website to showcase project work and skills.",
		},
		{
			"proj-title": "Task Management App",
			"proj-desc":  "Tools: React, Firebase\nDeveloped a real-time task manager with user authentication and data persistence.",
		},
	}
	snap.DynamicLists["intern-projects"] = []map[string]string{
		{
			"proj-title": "Internal Dashboard System",
			"proj-desc":  "Tools: Vue.js, Flask\nSummary: Built an internal tool for monitoring server health and employee logs.",
		},
	}
	return snap
}
