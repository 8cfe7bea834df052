package skills

var defaultCategories = []Category{
	{Name: "programming-languages", Skills: []string{
		"javascript", "typescript", "python", "java", "c++", "c#", "php", "ruby", "go", "rust",
		"swift", "kotlin", "scala", "r", "matlab", "perl", "haskell", "clojure", "erlang",
	}},
	{Name: "web-development", Skills: []string{
		"html", "css", "react", "vue", "angular", "svelte", "next.js", "nuxt.js", "gatsby",
		"webpack", "vite", "parcel", "babel", "sass", "less", "stylus", "tailwind", "bootstrap",
	}},
	{Name: "backend-development", Skills: []string{
		"node.js", "express", "fastify", "koa", "django", "flask", "spring", "laravel", "rails",
		"asp.net", "gin", "fiber", "actix", "phoenix", "play", "ktor",
	}},
	{Name: "databases", Skills: []string{
		"mysql", "postgresql", "mongodb", "redis", "elasticsearch", "cassandra", "dynamodb",
		"sqlite", "oracle", "sql server", "mariadb", "neo4j", "influxdb", "couchdb",
	}},
	{Name: "cloud-platforms", Skills: []string{
		"aws", "azure", "gcp", "digital ocean", "heroku", "vercel", "netlify", "firebase",
		"supabase", "planetscale", "railway", "render",
	}},
	{Name: "devops", Skills: []string{
		"docker", "kubernetes", "jenkins", "gitlab ci", "github actions", "terraform", "ansible",
		"chef", "puppet", "vagrant", "prometheus", "grafana", "elk stack",
	}},
	{Name: "mobile-development", Skills: []string{
		"react native", "flutter", "ionic", "xamarin", "cordova", "phonegap", "swift", "kotlin",
		"objective-c", "java android",
	}},
	{Name: "data-science", Skills: []string{
		"pandas", "numpy", "scikit-learn", "tensorflow", "pytorch", "keras", "opencv",
		"matplotlib", "seaborn", "plotly", "jupyter", "spark", "hadoop",
	}},
	{Name: "design", Skills: []string{
		"figma", "sketch", "adobe xd", "photoshop", "illustrator", "indesign", "canva",
		"principle", "framer", "invision", "zeplin",
	}},
	{Name: "testing", Skills: []string{
		"jest", "mocha", "chai", "cypress", "selenium", "playwright", "puppeteer", "jasmine",
		"karma", "enzyme", "testing library", "vitest",
	}},
}

// DefaultTaxonomy returns the built-in ten-category taxonomy.
func DefaultTaxonomy() *Taxonomy {
	t, err := NewTaxonomy(defaultCategories)
	if err != nil {
		panic(err)
	}
	return t
}
