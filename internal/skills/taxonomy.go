package skills

// Category names used by ExtractByCategory
const (
	CategoryProgrammingLanguages = "programming_languages"
	CategoryWebTechnologies      = "web_technologies"
	CategoryDatabases            = "databases"
	CategoryCloudPlatforms       = "cloud_platforms"
	CategoryDevOpsTools          = "devops_tools"
	CategoryVersionControl       = "version_control"
	CategoryDataScience          = "data_science"
	CategoryMobile               = "mobile"
	CategoryTesting              = "testing"
	CategoryOtherTechnical       = "other_technical"
	CategorySoftSkills           = "soft_skills"
	CategoryCustom               = "custom"
)

// taxonomyCategory is one named group of technical skills
type taxonomyCategory struct {
	name   string
	skills []string
}

// technicalSkills is the fixed technical vocabulary, in category order
var technicalSkills = []taxonomyCategory{
	{CategoryProgrammingLanguages, []string{
		"Python", "Java", "JavaScript", "TypeScript", "C", "C++", "C#",
		"Ruby", "Go", "Golang", "Rust", "Swift", "Kotlin", "Scala",
		"PHP", "Perl", "R", "MATLAB", "Julia", "Haskell", "Erlang",
		"Clojure", "F#", "Objective-C", "Dart", "Lua", "Groovy",
		"Shell", "Bash", "PowerShell", "VBA", "COBOL", "Fortran",
		"Assembly", "SQL", "PL/SQL", "T-SQL",
	}},
	{CategoryWebTechnologies, []string{
		"HTML", "HTML5", "CSS", "CSS3", "SASS", "SCSS", "LESS",
		"React", "React.js", "ReactJS", "Angular", "AngularJS", "Vue", "Vue.js",
		"Svelte", "Next.js", "NextJS", "Nuxt", "Nuxt.js", "Gatsby",
		"jQuery", "Bootstrap", "Tailwind", "Tailwind CSS", "Material UI",
		"Redux", "MobX", "Vuex", "GraphQL", "REST", "RESTful",
		"Node.js", "NodeJS", "Express", "Express.js", "Fastify",
		"Django", "Flask", "FastAPI", "Spring", "Spring Boot",
		"Ruby on Rails", "Rails", "Laravel", "ASP.NET", ".NET Core",
		"Webpack", "Vite", "Parcel", "Rollup", "Babel",
	}},
	{CategoryDatabases, []string{
		"MySQL", "PostgreSQL", "Postgres", "MongoDB", "SQLite", "Oracle",
		"SQL Server", "MSSQL", "MariaDB", "Redis", "Cassandra",
		"DynamoDB", "Elasticsearch", "CouchDB", "Neo4j", "Firebase",
		"Firestore", "Supabase", "PouchDB", "InfluxDB", "TimescaleDB",
	}},
	{CategoryCloudPlatforms, []string{
		"AWS", "Amazon Web Services", "Azure", "Microsoft Azure",
		"GCP", "Google Cloud", "Google Cloud Platform",
		"Heroku", "DigitalOcean", "Linode", "Vercel", "Netlify",
		"Cloudflare", "IBM Cloud", "Oracle Cloud", "Alibaba Cloud",
	}},
	{CategoryDevOpsTools, []string{
		"Docker", "Kubernetes", "K8s", "Jenkins", "GitLab CI", "GitHub Actions",
		"CircleCI", "Travis CI", "Ansible", "Terraform", "Puppet", "Chef",
		"Vagrant", "Helm", "ArgoCD", "Prometheus", "Grafana", "Datadog",
		"New Relic", "Splunk", "ELK Stack", "Nginx", "Apache",
	}},
	{CategoryVersionControl, []string{
		"Git", "GitHub", "GitLab", "Bitbucket", "SVN", "Subversion",
		"Mercurial", "Perforce",
	}},
	{CategoryDataScience, []string{
		"Pandas", "NumPy", "SciPy", "Scikit-learn", "TensorFlow",
		"PyTorch", "Keras", "OpenCV", "NLTK", "SpaCy",
		"Matplotlib", "Seaborn", "Plotly", "Tableau", "Power BI",
		"Jupyter", "Apache Spark", "Hadoop", "Airflow", "MLflow",
		"Hugging Face", "LangChain", "OpenAI", "GPT", "LLM",
	}},
	{CategoryMobile, []string{
		"iOS", "Android", "React Native", "Flutter", "Xamarin",
		"Ionic", "Cordova", "SwiftUI", "UIKit", "Jetpack Compose",
	}},
	{CategoryTesting, []string{
		"Jest", "Mocha", "Chai", "Jasmine", "Cypress", "Selenium",
		"Playwright", "Puppeteer", "PyTest", "unittest", "JUnit",
		"TestNG", "RSpec", "Capybara", "Postman", "SoapUI",
	}},
	{CategoryOtherTechnical, []string{
		"Linux", "Unix", "Windows Server", "macOS",
		"API", "APIs", "Microservices", "SOA", "WebSocket",
		"OAuth", "JWT", "SAML", "SSO", "LDAP",
		"Agile", "Scrum", "Kanban", "Jira", "Confluence",
		"Figma", "Sketch", "Adobe XD", "InVision",
	}},
}

// softSkills is the fixed soft-skill vocabulary
var softSkills = []string{
	"Leadership", "Communication", "Teamwork", "Problem Solving",
	"Critical Thinking", "Time Management", "Project Management",
	"Analytical Skills", "Attention to Detail", "Adaptability",
	"Collaboration", "Creativity", "Decision Making", "Negotiation",
	"Presentation", "Public Speaking", "Conflict Resolution",
	"Strategic Planning", "Mentoring", "Coaching",
	"Customer Service", "Client Relations", "Stakeholder Management",
	"Cross-functional", "Self-motivated", "Results-oriented",
	"Detail-oriented", "Fast learner", "Multi-tasking",
}

// Categories returns the technical category names in taxonomy order
func Categories() []string {
	names := make([]string, 0, len(technicalSkills))
	for _, c := range technicalSkills {
		names = append(names, c.name)
	}
	return names
}

// gapCategories bucket canonical keys for skill-gap reporting
var gapCategories = []struct {
	name string
	keys map[string]bool
}{
	{"programming", setOf("python", "java", "javascript", "typescript", "c++", "c#", "go", "rust", "ruby", "php", "swift", "kotlin", "scala")},
	{"frontend", setOf("react", "angular", "vue", "svelte", "html", "css", "tailwind", "bootstrap", "jquery")},
	{"backend", setOf("django", "flask", "fastapi", "spring", "node.js", "express", "rails", "laravel", "asp.net")},
	{"database", setOf("postgresql", "mysql", "mongodb", "redis", "elasticsearch", "dynamodb", "cassandra", "sql", "oracle")},
	{"cloud", setOf("aws", "azure", "gcp", "heroku", "digitalocean")},
	{"devops", setOf("docker", "kubernetes", "terraform", "ansible", "jenkins", "ci/cd", "linux", "nginx")},
	{"data_science", setOf("machine learning", "deep learning", "tensorflow", "pytorch", "pandas", "numpy", "spark", "hadoop")},
}

// GapCategory returns the coarse category of a skill for gap analysis, "technical" when unknown
func GapCategory(skill string) string {
	key := Normalize(skill)
	for _, c := range gapCategories {
		if c.keys[key] {
			return c.name
		}
	}
	return "technical"
}

func setOf(items ...string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, it := range items {
		m[it] = true
	}
	return m
}
