package catalog

// DefaultApps returns the built-in application set.
func DefaultApps() []App {
	return []App{
		{
			ID:      TerminalID,
			Title:   "ObvTerm",
			Aliases: []string{"terminal", "term", "shell"},
			Width:   72,
			Height:  18,
		},
		{
			ID:      "about-me",
			Title:   "About Me",
			Aliases: []string{"about", "me", "bio"},
			Width:   56,
			Height:  12,
			Body:    "Hi, I build systems software, terminals and graphics tooling.\nType 'whoami' in ObvTerm for the short version.",
		},
		{
			ID:      "projects",
			Title:   "Projects",
			Aliases: []string{"proj", "project", "work"},
			Width:   60,
			Height:  14,
			Body:    "Jerm: a high-performance terminal.\ncuda-GL: GPU-accelerated graphics components.\nObvOS: this desktop.",
		},
		{
			ID:      "workbench",
			Title:   "Workbench",
			Aliases: []string{"bench", "forge", "current"},
			Width:   56,
			Height:  12,
			Body:    "Things on the bench right now. See 'status' in ObvTerm.",
		},
		{
			ID:      "academics",
			Title:   "Academics",
			Aliases: []string{"edu", "education", "school"},
			Width:   56,
			Height:  12,
			Body:    "Computer Engineering.\nCoursework: operating systems, networks, algorithms.",
		},
		{
			ID:      "certifications",
			Title:   "Certifications",
			Aliases: []string{"certs", "badges"},
			Width:   56,
			Height:  12,
			Body:    "A shelf of badges, most of them earned the hard way.",
		},
		{
			ID:      "activities",
			Title:   "Activities",
			Aliases: []string{"activity", "clubs", "extra"},
			Width:   56,
			Height:  12,
			Body:    "Clubs, hackathons and the occasional talk.",
		},
		{
			ID:      "goals",
			Title:   "Goals",
			Aliases: []string{"goal"},
			Width:   56,
			Height:  12,
			Body:    "Ship things people use. Keep learning.",
		},
		{
			ID:      "contact",
			Title:   "Contact",
			Aliases: []string{"email", "reach", "talk"},
			Width:   56,
			Height:  10,
			Body:    "Use 'contact' or 'socials' in ObvTerm.",
		},
		{
			ID:      "library",
			Title:   "Library",
			Aliases: []string{"reading", "books", "notes"},
			Width:   56,
			Height:  12,
			Body:    "Run 'cat Reading.txt' in ObvTerm for the current reading list.",
		},
	}
}

// DefaultShortcuts returns the built-in external shortcuts.
func DefaultShortcuts() []Shortcut {
	return []Shortcut{
		{Label: "GitHub", URL: "https://github.com/obvos"},
		{Label: "Resume", URL: "https://obvos.dev/resume.pdf"},
	}
}

// DefaultFiles returns the built-in virtual filesystem.
func DefaultFiles() []File {
	return []File{
		{
			Name: "Reading.txt",
			Content: "Currently Reading:\n" +
				"1. Artificial Intelligence: A Modern Approach (Russell & Norvig)\n" +
				"2. Computer Networking: A Top-Down Approach (Kurose & Ross)\n" +
				"3. Introduction to Algorithms (CLRS)",
		},
	}
}

// Default builds the built-in catalog. The built-in tables are known to be valid.
func Default() *Catalog {
	c, err := New(DefaultApps(), DefaultShortcuts(), DefaultFiles())
	if err != nil {
		panic(err)
	}
	return c
}
