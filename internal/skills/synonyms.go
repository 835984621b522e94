// Package skills provides the skill taxonomy, synonym normalization and
// pattern-based skill extraction used on both resumes and job postings.
package skills

import (
	"sort"
	"strings"
)

// synonymEntry maps one canonical key to its alternative spellings
type synonymEntry struct {
	canonical string
	synonyms  []string
}

// synonymTable is ordered: when a surface form appears under several
// canonicals, the later entry wins (e.g. "tf" resolves to tensorflow).
var synonymTable = []synonymEntry{
	{"javascript", []string{"js", "ecmascript", "es6", "es2015", "es2020", "vanilla js"}},
	{"typescript", []string{"ts"}},
	{"python", []string{"python3", "python2", "py", "cpython"}},
	{"java", []string{"java8", "java11", "java17", "jdk", "j2ee", "jee"}},
	{"c#", []string{"csharp", "c sharp", ".net c#"}},
	{"c++", []string{"cpp", "c plus plus", "cplusplus"}},
	{"c", []string{"ansi c", "c language"}},
	{"go", []string{"golang"}},
	{"rust", []string{"rustlang"}},
	{"ruby", []string{"ruby on rails", "ror"}},
	{"php", []string{"php7", "php8"}},
	{"swift", []string{"swift ui", "swiftui"}},
	{"kotlin", []string{"kotlin/jvm"}},
	{"scala", []string{"scala lang"}},
	{"r", []string{"r language", "r programming", "rstats"}},
	{"matlab", []string{"mathlab"}},
	{"perl", []string{"perl5"}},
	{"shell", []string{"bash", "sh", "zsh", "shell scripting", "bash scripting"}},
	{"powershell", []string{"ps", "posh", "windows powershell"}},
	{"sql", []string{"structured query language", "sql queries"}},
	{"react", []string{"reactjs", "react.js", "react js"}},
	{"angular", []string{"angularjs", "angular.js", "angular 2+", "ng"}},
	{"vue", []string{"vuejs", "vue.js", "vue3"}},
	{"svelte", []string{"sveltejs", "svelte.js"}},
	{"next.js", []string{"nextjs", "next"}},
	{"nuxt", []string{"nuxtjs", "nuxt.js"}},
	{"jquery", []string{"jquery.js"}},
	{"bootstrap", []string{"twitter bootstrap", "bootstrap css"}},
	{"tailwind", []string{"tailwindcss", "tailwind css"}},
	{"node.js", []string{"nodejs", "node", "express.js", "expressjs"}},
	{"django", []string{"django python", "django rest framework", "drf"}},
	{"flask", []string{"flask python"}},
	{"fastapi", []string{"fast api", "fastapi python"}},
	{"spring", []string{"spring boot", "spring framework", "springboot"}},
	{"rails", []string{"ruby on rails", "ror"}},
	{"laravel", []string{"laravel php"}},
	{"asp.net", []string{"aspnet", "asp net", ".net core", "dotnet"}},
	{"postgresql", []string{"postgres", "psql", "pg"}},
	{"mysql", []string{"mariadb", "maria db"}},
	{"mongodb", []string{"mongo", "mongo db"}},
	{"redis", []string{"redis cache"}},
	{"elasticsearch", []string{"elastic", "es", "elk"}},
	{"dynamodb", []string{"dynamo db", "aws dynamodb"}},
	{"cassandra", []string{"apache cassandra"}},
	{"sqlite", []string{"sqlite3"}},
	{"oracle", []string{"oracle db", "oracle database", "plsql", "pl/sql"}},
	{"sql server", []string{"mssql", "microsoft sql server", "ms sql"}},
	{"aws", []string{"amazon web services", "amazon aws"}},
	{"azure", []string{"microsoft azure", "azure cloud"}},
	{"gcp", []string{"google cloud", "google cloud platform"}},
	{"heroku", []string{"heroku cloud"}},
	{"digitalocean", []string{"digital ocean"}},
	{"cloudflare", []string{"cloudflare workers"}},
	{"docker", []string{"containerization", "docker compose", "docker-compose"}},
	{"kubernetes", []string{"k8s", "kube", "k8", "kubectl"}},
	{"terraform", []string{"terraform iac", "tf"}},
	{"ansible", []string{"ansible automation"}},
	{"jenkins", []string{"jenkins ci", "jenkins pipeline"}},
	{"gitlab ci", []string{"gitlab-ci", "gitlab ci/cd"}},
	{"github actions", []string{"gh actions", "github workflows"}},
	{"circleci", []string{"circle ci"}},
	{"nginx", []string{"nginx server"}},
	{"apache", []string{"apache http", "httpd"}},
	{"linux", []string{"unix", "linux administration", "rhel", "centos", "ubuntu"}},
	{"machine learning", []string{"ml", "statistical learning"}},
	{"deep learning", []string{"dl", "neural networks", "nn"}},
	{"tensorflow", []string{"tf", "tensorflow 2"}},
	{"pytorch", []string{"torch"}},
	{"scikit-learn", []string{"sklearn", "scikit learn"}},
	{"pandas", []string{"pandas python"}},
	{"numpy", []string{"np", "numpy python"}},
	{"spark", []string{"apache spark", "pyspark"}},
	{"hadoop", []string{"apache hadoop", "hdfs"}},
	{"kafka", []string{"apache kafka"}},
	{"rest", []string{"restful", "rest api", "restful api"}},
	{"graphql", []string{"graph ql", "gql"}},
	{"grpc", []string{"g rpc"}},
	{"soap", []string{"soap api"}},
	{"websocket", []string{"websockets", "ws"}},
	{"jest", []string{"jestjs"}},
	{"pytest", []string{"py.test", "python testing"}},
	{"junit", []string{"junit5"}},
	{"selenium", []string{"selenium webdriver"}},
	{"cypress", []string{"cypress.io"}},
	{"mocha", []string{"mochajs"}},
	{"git", []string{"github", "gitlab", "bitbucket", "version control"}},
	{"svn", []string{"subversion"}},
	{"agile", []string{"scrum", "kanban", "agile methodology"}},
	{"jira", []string{"atlassian jira"}},
	{"confluence", []string{"atlassian confluence"}},
	{"cybersecurity", []string{"cyber security", "infosec", "information security"}},
	{"penetration testing", []string{"pen testing", "pentest", "ethical hacking"}},
	{"oauth", []string{"oauth2", "oauth 2.0"}},
	{"jwt", []string{"json web token", "json web tokens"}},
	{"microservices", []string{"micro services", "microservice architecture"}},
	{"ci/cd", []string{"cicd", "ci cd", "continuous integration", "continuous deployment"}},
	{"api", []string{"apis", "api development"}},
}

// displayNames gives the preferred presentation of a canonical key
var displayNames = map[string]string{
	"javascript":       "JavaScript",
	"typescript":       "TypeScript",
	"python":           "Python",
	"java":             "Java",
	"c#":               "C#",
	"c++":              "C++",
	"go":               "Go",
	"rust":             "Rust",
	"ruby":             "Ruby",
	"php":              "PHP",
	"swift":            "Swift",
	"kotlin":           "Kotlin",
	"react":            "React",
	"angular":          "Angular",
	"vue":              "Vue.js",
	"node.js":          "Node.js",
	"django":           "Django",
	"flask":            "Flask",
	"fastapi":          "FastAPI",
	"spring":           "Spring",
	"postgresql":       "PostgreSQL",
	"mysql":            "MySQL",
	"mongodb":          "MongoDB",
	"redis":            "Redis",
	"elasticsearch":    "Elasticsearch",
	"aws":              "AWS",
	"azure":            "Azure",
	"gcp":              "GCP",
	"docker":           "Docker",
	"kubernetes":       "Kubernetes",
	"terraform":        "Terraform",
	"ansible":          "Ansible",
	"jenkins":          "Jenkins",
	"linux":            "Linux",
	"git":              "Git",
	"machine learning": "Machine Learning",
	"deep learning":    "Deep Learning",
	"tensorflow":       "TensorFlow",
	"pytorch":          "PyTorch",
	"scikit-learn":     "scikit-learn",
	"pandas":           "Pandas",
	"numpy":            "NumPy",
	"rest":             "REST API",
	"graphql":          "GraphQL",
	"sql":              "SQL",
	"agile":            "Agile",
	"ci/cd":            "CI/CD",
	"microservices":    "Microservices",
}

var (
	reverseIndex = buildReverseIndex()
	synonymSets  = buildSynonymSets()
)

func buildReverseIndex() map[string]string {
	index := make(map[string]string)
	for _, entry := range synonymTable {
		for _, syn := range entry.synonyms {
			index[syn] = entry.canonical
		}
	}
	// Canonical keys always resolve to themselves so Normalize is idempotent
	for _, entry := range synonymTable {
		index[entry.canonical] = entry.canonical
	}
	return index
}

func buildSynonymSets() map[string][]string {
	sets := make(map[string][]string, len(synonymTable))
	for _, entry := range synonymTable {
		sets[entry.canonical] = append(sets[entry.canonical], entry.synonyms...)
	}
	return sets
}

// Normalize maps a skill to its canonical key.
// Unknown skills pass through lower-cased and trimmed.
func Normalize(skill string) string {
	key := strings.ToLower(strings.TrimSpace(skill))
	if key == "" {
		return ""
	}
	if canonical, ok := reverseIndex[key]; ok {
		return canonical
	}
	return key
}

// DisplayName returns the presentation form of a canonical key, or "" when none is known
func DisplayName(key string) string {
	return displayNames[key]
}

// Canonical returns the display form of a skill when known, otherwise the input unchanged
func Canonical(skill string) string {
	if name := DisplayName(Normalize(skill)); name != "" {
		return name
	}
	return skill
}

// Match reports whether two skills are equal after synonym normalization
func Match(a, b string) bool {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return false
	}
	return Normalize(a) == Normalize(b)
}

// FindMatching partitions job skills into those the resume has and those it lacks.
// Both lists keep job order and use Canonical display names.
func FindMatching(resumeSkills, jobSkills []string) (matched, missing []string) {
	have := NormalizeSet(resumeSkills)
	matched = []string{}
	missing = []string{}
	for _, skill := range jobSkills {
		if have[Normalize(skill)] {
			matched = append(matched, Canonical(skill))
		} else {
			missing = append(missing, Canonical(skill))
		}
	}
	return matched, missing
}

// Synonyms returns every known spelling of a skill including its canonical key, sorted
func Synonyms(skill string) []string {
	key := Normalize(skill)
	syns, ok := synonymSets[key]
	if !ok {
		return []string{strings.ToLower(strings.TrimSpace(skill))}
	}

	seen := map[string]bool{key: true}
	out := []string{key}
	for _, s := range syns {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

// NormalizeSet returns the set of canonical keys for a list of skills, skipping blanks
func NormalizeSet(list []string) map[string]bool {
	set := make(map[string]bool, len(list))
	for _, s := range list {
		if key := Normalize(s); key != "" {
			set[key] = true
		}
	}
	return set
}
