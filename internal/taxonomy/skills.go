package taxonomy

// Category groups skills in the catalog.
type Category string

const (
	CategoryLanguages   Category = "Languages"
	CategoryFrontend    Category = "Frontend"
	CategoryBackend     Category = "Backend"
	CategoryDatabases   Category = "Databases"
	CategoryCloudDevOps Category = "Cloud & DevOps"
	CategoryDataML      Category = "Data & ML"
	CategoryTesting     Category = "Testing"
	CategorySecurity    Category = "Security"
	CategoryTools       Category = "Tools"
	CategoryConcepts    Category = "Concepts"
	CategorySoftSkills  Category = "Soft Skills"
)

// Categories lists every category in catalog order.
var Categories = []Category{
	CategoryLanguages,
	CategoryFrontend,
	CategoryBackend,
	CategoryDatabases,
	CategoryCloudDevOps,
	CategoryDataML,
	CategoryTesting,
	CategorySecurity,
	CategoryTools,
	CategoryConcepts,
	CategorySoftSkills,
}

// Skill is a canonical catalog entry. Name is what extraction is allowed to emit,
// Aliases are extra surface forms searched for in resume text.
type Skill struct {
	Name     string
	Category Category
	Aliases  []string
}

// catalog is the fixed vocabulary. Names must stay unique.
var catalog = []Skill{
	// Languages
	{Name: "JavaScript", Category: CategoryLanguages, Aliases: []string{"JS", "ECMAScript"}},
	{Name: "TypeScript", Category: CategoryLanguages, Aliases: []string{"TS"}},
	{Name: "Python", Category: CategoryLanguages},
	{Name: "Java", Category: CategoryLanguages},
	{Name: "C", Category: CategoryLanguages},
	{Name: "C++", Category: CategoryLanguages, Aliases: []string{"CPP"}},
	{Name: "C#", Category: CategoryLanguages, Aliases: []string{"C Sharp"}},
	{Name: "Go", Category: CategoryLanguages, Aliases: []string{"Golang"}},
	{Name: "Rust", Category: CategoryLanguages},
	{Name: "Ruby", Category: CategoryLanguages},
	{Name: "PHP", Category: CategoryLanguages},
	{Name: "Kotlin", Category: CategoryLanguages},
	{Name: "Swift", Category: CategoryLanguages},
	{Name: "Scala", Category: CategoryLanguages},
	{Name: "R", Category: CategoryLanguages},
	{Name: "SQL", Category: CategoryLanguages},
	{Name: "Bash", Category: CategoryLanguages, Aliases: []string{"Shell scripting", "Shell"}},
	{Name: "PowerShell", Category: CategoryLanguages},

	// Frontend
	{Name: "HTML", Category: CategoryFrontend, Aliases: []string{"HTML5"}},
	{Name: "CSS", Category: CategoryFrontend, Aliases: []string{"CSS3"}},
	{Name: "React", Category: CategoryFrontend, Aliases: []string{"ReactJS"}},
	{Name: "Next.js", Category: CategoryFrontend, Aliases: []string{"NextJS"}},
	{Name: "Vue.js", Category: CategoryFrontend, Aliases: []string{"Vue", "VueJS"}},
	{Name: "Angular", Category: CategoryFrontend, Aliases: []string{"AngularJS"}},
	{Name: "Svelte", Category: CategoryFrontend},
	{Name: "Vite", Category: CategoryFrontend},
	{Name: "Webpack", Category: CategoryFrontend},
	{Name: "Babel", Category: CategoryFrontend},
	{Name: "Tailwind CSS", Category: CategoryFrontend, Aliases: []string{"Tailwind"}},
	{Name: "Bootstrap", Category: CategoryFrontend},
	{Name: "Material UI", Category: CategoryFrontend, Aliases: []string{"MUI"}},
	{Name: "Redux", Category: CategoryFrontend},
	{Name: "Zustand", Category: CategoryFrontend},
	{Name: "MobX", Category: CategoryFrontend},
	{Name: "Sass", Category: CategoryFrontend, Aliases: []string{"SCSS"}},
	{Name: "Responsive Design", Category: CategoryFrontend},
	{Name: "Accessibility", Category: CategoryFrontend, Aliases: []string{"a11y"}},

	// Backend
	{Name: "Node.js", Category: CategoryBackend, Aliases: []string{"Node", "NodeJS"}},
	{Name: "Express", Category: CategoryBackend, Aliases: []string{"Express.js", "ExpressJS"}},
	{Name: "NestJS", Category: CategoryBackend, Aliases: []string{"Nest.js"}},
	{Name: "Django", Category: CategoryBackend},
	{Name: "Flask", Category: CategoryBackend},
	{Name: "FastAPI", Category: CategoryBackend},
	{Name: "Spring Boot", Category: CategoryBackend, Aliases: []string{"Spring"}},
	{Name: ".NET", Category: CategoryBackend, Aliases: []string{"Dotnet", "DotNet"}},
	{Name: "ASP.NET Core", Category: CategoryBackend, Aliases: []string{"ASP.NET", "ASP.NETCore"}},
	{Name: "GraphQL", Category: CategoryBackend},
	{Name: "REST APIs", Category: CategoryBackend, Aliases: []string{"REST", "RESTful APIs"}},
	{Name: "gRPC", Category: CategoryBackend},
	{Name: "WebSockets", Category: CategoryBackend},
	{Name: "Microservices", Category: CategoryBackend},
	{Name: "Monolith Architecture", Category: CategoryBackend, Aliases: []string{"Monolith"}},
	{Name: "Serverless", Category: CategoryBackend},
	{Name: "Message Queues", Category: CategoryBackend, Aliases: []string{"Queue", "Queues", "Messaging"}},
	{Name: "Kafka", Category: CategoryBackend, Aliases: []string{"Apache Kafka"}},
	{Name: "RabbitMQ", Category: CategoryBackend},
	{Name: "Redis Streams", Category: CategoryBackend},
	{Name: "API Design", Category: CategoryBackend},

	// Databases
	{Name: "MySQL", Category: CategoryDatabases},
	{Name: "PostgreSQL", Category: CategoryDatabases, Aliases: []string{"Postgres"}},
	{Name: "SQLite", Category: CategoryDatabases},
	{Name: "MongoDB", Category: CategoryDatabases},
	{Name: "Redis", Category: CategoryDatabases},
	{Name: "Elasticsearch", Category: CategoryDatabases, Aliases: []string{"ElasticSearch"}},
	{Name: "DynamoDB", Category: CategoryDatabases},
	{Name: "Firestore", Category: CategoryDatabases},
	{Name: "ORMs", Category: CategoryDatabases, Aliases: []string{"ORM"}},
	{Name: "Prisma", Category: CategoryDatabases},
	{Name: "Sequelize", Category: CategoryDatabases},
	{Name: "TypeORM", Category: CategoryDatabases},
	{Name: "Mongoose", Category: CategoryDatabases},
	{Name: "Database Indexing", Category: CategoryDatabases, Aliases: []string{"Indexes", "Indexing"}},
	{Name: "Database Design", Category: CategoryDatabases},

	// Cloud & DevOps
	{Name: "AWS", Category: CategoryCloudDevOps, Aliases: []string{"Amazon Web Services"}},
	{Name: "Azure", Category: CategoryCloudDevOps, Aliases: []string{"Microsoft Azure"}},
	{Name: "GCP", Category: CategoryCloudDevOps, Aliases: []string{"Google Cloud", "Google Cloud Platform"}},
	{Name: "Docker", Category: CategoryCloudDevOps},
	{Name: "Kubernetes", Category: CategoryCloudDevOps, Aliases: []string{"K8s"}},
	{Name: "Terraform", Category: CategoryCloudDevOps},
	{Name: "Ansible", Category: CategoryCloudDevOps},
	{Name: "CI/CD", Category: CategoryCloudDevOps, Aliases: []string{"Continuous Integration", "Continuous Delivery"}},
	{Name: "GitHub Actions", Category: CategoryCloudDevOps},
	{Name: "Jenkins", Category: CategoryCloudDevOps},
	{Name: "GitLab CI", Category: CategoryCloudDevOps},
	{Name: "Linux", Category: CategoryCloudDevOps},
	{Name: "Nginx", Category: CategoryCloudDevOps},
	{Name: "Load Balancing", Category: CategoryCloudDevOps},
	{Name: "Monitoring", Category: CategoryCloudDevOps, Aliases: []string{"Observability"}},
	{Name: "Logging", Category: CategoryCloudDevOps},
	{Name: "Prometheus", Category: CategoryCloudDevOps},
	{Name: "Grafana", Category: CategoryCloudDevOps},

	// Data & ML
	{Name: "Pandas", Category: CategoryDataML},
	{Name: "NumPy", Category: CategoryDataML},
	{Name: "Scikit-learn", Category: CategoryDataML, Aliases: []string{"sklearn"}},
	{Name: "TensorFlow", Category: CategoryDataML},
	{Name: "PyTorch", Category: CategoryDataML},
	{Name: "NLP", Category: CategoryDataML, Aliases: []string{"Natural Language Processing"}},
	{Name: "LLMs", Category: CategoryDataML, Aliases: []string{"Large Language Models"}},
	{Name: "OpenAI API", Category: CategoryDataML, Aliases: []string{"OpenAI"}},
	{Name: "Prompt Engineering", Category: CategoryDataML},
	{Name: "Data Analysis", Category: CategoryDataML},
	{Name: "Data Engineering", Category: CategoryDataML},
	{Name: "ETL", Category: CategoryDataML},
	{Name: "Airflow", Category: CategoryDataML, Aliases: []string{"Apache Airflow"}},
	{Name: "Spark", Category: CategoryDataML, Aliases: []string{"Apache Spark", "PySpark"}},
	{Name: "BigQuery", Category: CategoryDataML},
	{Name: "Snowflake", Category: CategoryDataML},

	// Testing
	{Name: "Unit Testing", Category: CategoryTesting},
	{Name: "Integration Testing", Category: CategoryTesting},
	{Name: "E2E Testing", Category: CategoryTesting, Aliases: []string{"End-to-end testing"}},
	{Name: "Jest", Category: CategoryTesting},
	{Name: "Vitest", Category: CategoryTesting},
	{Name: "React Testing Library", Category: CategoryTesting, Aliases: []string{"RTL"}},
	{Name: "Cypress", Category: CategoryTesting},
	{Name: "Playwright", Category: CategoryTesting},
	{Name: "PyTest", Category: CategoryTesting, Aliases: []string{"pytest"}},
	{Name: "JUnit", Category: CategoryTesting},
	{Name: "Mocha", Category: CategoryTesting},

	// Security
	{Name: "Authentication", Category: CategorySecurity},
	{Name: "Authorization", Category: CategorySecurity},
	{Name: "JWT", Category: CategorySecurity},
	{Name: "OAuth 2.0", Category: CategorySecurity, Aliases: []string{"OAuth2"}},
	{Name: "OpenID Connect", Category: CategorySecurity, Aliases: []string{"OIDC"}},
	{Name: "OWASP", Category: CategorySecurity},
	{Name: "Security Best Practices", Category: CategorySecurity},

	// Tools
	{Name: "Git", Category: CategoryTools},
	{Name: "GitHub", Category: CategoryTools},
	{Name: "GitLab", Category: CategoryTools},
	{Name: "Jira", Category: CategoryTools},
	{Name: "Confluence", Category: CategoryTools},
	{Name: "Postman", Category: CategoryTools},
	{Name: "Figma", Category: CategoryTools},
	{Name: "VS Code", Category: CategoryTools, Aliases: []string{"Visual Studio Code"}},
	{Name: "npm", Category: CategoryTools},
	{Name: "pnpm", Category: CategoryTools},
	{Name: "yarn", Category: CategoryTools},

	// Concepts
	{Name: "Object-Oriented Programming", Category: CategoryConcepts, Aliases: []string{"OOP"}},
	{Name: "Functional Programming", Category: CategoryConcepts},
	{Name: "Data Structures & Algorithms", Category: CategoryConcepts, Aliases: []string{"DSA"}},
	{Name: "System Design", Category: CategoryConcepts},
	{Name: "Scalability", Category: CategoryConcepts},
	{Name: "Performance Optimization", Category: CategoryConcepts},
	{Name: "Caching", Category: CategoryConcepts},
	{Name: "Concurrency", Category: CategoryConcepts},
	{Name: "Distributed Systems", Category: CategoryConcepts},
	{Name: "Agile", Category: CategoryConcepts},
	{Name: "Scrum", Category: CategoryConcepts},
	{Name: "Kanban", Category: CategoryConcepts},

	// Soft Skills
	{Name: "Communication", Category: CategorySoftSkills},
	{Name: "Collaboration", Category: CategorySoftSkills, Aliases: []string{"Teamwork"}},
	{Name: "Problem Solving", Category: CategorySoftSkills},
	{Name: "Ownership", Category: CategorySoftSkills},
	{Name: "Leadership", Category: CategorySoftSkills},
	{Name: "Mentoring", Category: CategorySoftSkills},
}
