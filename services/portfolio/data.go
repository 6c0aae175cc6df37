package portfolio

// Profile is the static knowledge corpus behind the portfolio path. Content
// is an external collaborator concern; this copy ships as a default so the
// service answers without any backing store.
type Profile struct {
	Name   string              `json:"name"`
	Title  string              `json:"title"`
	Bio    string              `json:"bio"`
	Skills map[string][]string `json:"skills"`
}

type Project struct {
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Tags              []string `json:"tags"`
	ArchitectureNotes string   `json:"architectureNotes"`
}

type Availability struct {
	Status string `json:"status"`
	OpenTo string `json:"openTo"`
}

var profileData = Profile{
	Name:  "Alex Reyes",
	Title: "Full-Stack Developer & AI Specialist",
	Bio: "Started with backend development, evolved into full-stack work with React " +
		"and Next.js, then moved on to building AI-powered applications and " +
		"multi-agent systems.",
	Skills: map[string][]string{
		"languages": {"JavaScript (ES6+)", "TypeScript", "Python", "Go", "SQL"},
		"frontend":  {"React", "Next.js", "Tailwind CSS"},
		"backend":   {"Node.js", "NestJS", "FastAPI", "Gin"},
		"ai":        {"LangChain", "LangGraph", "RAG"},
	},
}

var projectsData = []Project{
	{
		Name:              "UptimeGuard",
		Description:       "Decentralized uptime monitoring with crypto-verified validators.",
		Tags:              []string{"React", "Express", "Node.js", "PostgreSQL", "WebSockets", "Prisma"},
		ArchitectureNotes: "Tracks website status in real time with historical analytics.",
	},
	{
		Name:              "GoPlanIt",
		Description:       "AI travel itineraries using real-time flight and attraction data.",
		Tags:              []string{"React", "Node.js", "Express", "Gemini API", "Inngest", "MongoDB"},
		ArchitectureNotes: "Tailored recommendations with async processing handled via Inngest.",
	},
	{
		Name:              "Airgpt",
		Description:       "RAG system built for a university knowledge base.",
		Tags:              []string{"Next.js", "React", "FastAPI", "Python", "Qdrant", "LangChain"},
		ArchitectureNotes: "Answers queries by searching and reasoning over ingested documents in Qdrant.",
	},
}

var availabilityData = Availability{
	Status: "Currently employed as a web developer.",
	OpenTo: "Exploring opportunities involving AI infrastructure, advanced backend systems, or lead full-stack roles.",
}
