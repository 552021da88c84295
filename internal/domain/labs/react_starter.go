// Package labs holds the built-in lab definitions.
package labs

import (
	c "labgrade.dev/pkg/labgrade/internal/domain/checks"
	m "labgrade.dev/pkg/labgrade/internal/model"
)

// ReactStarterName is the lab label used in reports.
const ReactStarterName = "5-2-react-starter-main"

const (
	staticCardFile  = "Student_Card_Static.jsx"
	dynamicCardFile = "Student_Card_Static_Dynamic.jsx"
)

// ReactStarter returns the "React Starter – Student Info Card" lab: a static
// card component (TODO 1) and a props-driven card rendered with map() from
// App.jsx (TODO 2), 40 marks each.
func ReactStarter() m.Lab {
	return m.Lab{
		Name:  ReactStarterName,
		Files: reactStarterFiles(),
		Sets: []m.RequirementSet{
			staticCardSet(),
			dynamicCardSet(),
		},
	}
}

func reactStarterFiles() []m.FileCandidates {
	return []m.FileCandidates{
		{
			Role:      m.RoleEntry,
			Label:     "App",
			Preferred: []m.Path{"src/App.jsx", "src/App.js"},
			Names:     []string{"App.jsx", "App.js"},
			NotFound:  "App.jsx/App.js not found",
		},
		{
			Role:      m.RoleStatic,
			Label:     "Static card",
			Preferred: componentPaths(staticCardNames()),
			Names:     staticCardNames(),
			NotFound:  "Static component file not found",
		},
		{
			Role:      m.RoleDynamic,
			Label:     "Dynamic card",
			Preferred: componentPaths(dynamicCardNames()),
			Names:     dynamicCardNames(),
			NotFound:  "Dynamic component file not found",
		},
	}
}

func staticCardNames() []string {
	return []string{
		staticCardFile,
		"StudentCard.jsx",
		"StudentCardStatic.jsx",
		"StudentCardSatic.jsx", // typo in the lab handout
	}
}

func dynamicCardNames() []string {
	return []string{dynamicCardFile, "StudentCardDynamic.jsx"}
}

func componentPaths(names []string) []m.Path {
	paths := make([]m.Path, 0, len(names))
	for _, name := range names {
		paths = append(paths, m.Path("src/components/"+name))
	}

	return paths
}

var defaultExport = c.AnyPattern(`export\s+default\s+\w+`, `export\s+default\s+function\s+\w+`)

func staticCardSet() m.RequirementSet {
	return m.RequirementSet{
		Task: m.Task{
			ID:    "todo1",
			Name:  "TODO 1: StudentCard Static Component (basic card with hardcoded info)",
			Marks: 40,
		},
		MissingReason:    "Static card component file not found (expected src/components/" + staticCardFile + ").",
		UnreadableReason: "Could not read component file at: {path}",
		Groups: []m.RequirementGroup{{
			Role: m.RoleStatic,
			Requirements: []m.Requirement{
				{
					Label: "Has a React component (function or const arrow function) (lenient)",
					Check: c.AnyPattern(
						`\bfunction\s+StudentCard`,
						`\bfunction\s+StudentCardStatic`,
						`\bfunction\s+StudentCardSatic`,
						`\bconst\s+StudentCard`,
						`\bconst\s+StudentCardStatic`,
						`\bconst\s+StudentCardSatic`,
					),
				},
				{
					Label: "Returns JSX with a wrapping <div> (lenient)",
					Check: c.AnyPattern(
						`\breturn\s*\(\s*<div[\s>]`,
						`return\s+<div[\s>]`,
						`<div[\s>][\s\S]*</div>`,
					),
				},
				{
					Label: "Includes an <h3> element for student name (lenient)",
					Check: c.Pattern(`<h3[\s>]`),
				},
				{
					Label: "Includes at least two <p> elements for id + department (lenient)",
					Check: c.AtLeast(`<p[\s>]`, 2),
				},
				{
					Label: "Exports default (any component name) (lenient)",
					Check: defaultExport,
				},
				{
					Label: `Mentions labels like "Name" / "ID" / "Department" OR placeholders (lenient)`,
					Check: c.AnyPattern(
						`\bname\b`,
						`\bdepartment\b`,
						`\bdept\b`,
						`\bid\b`,
						`YOUR_NAME`,
						`YOUR_STUDENT_ID`,
						`YOUR_DEPARTMENT`,
					),
				},
			},
		}},
	}
}

func dynamicCardSet() m.RequirementSet {
	return m.RequirementSet{
		Task: m.Task{
			ID:    "todo2",
			Name:  "TODO 2: StudentCard Dynamic (props + map in App.jsx)",
			Marks: 40,
		},
		MissingReason: "Missing key React files: App.jsx (or App.js) and " + dynamicCardFile + ".",
		Groups: []m.RequirementGroup{
			{
				Role:         m.RoleDynamic,
				MissingLabel: "Dynamic card component file exists (expected src/components/" + dynamicCardFile + ")",
				Requirements: dynamicCardRequirements(),
			},
			{
				Role:         m.RoleEntry,
				MissingLabel: "App.jsx (or App.js) found/readable",
				Requirements: appRequirements(),
			},
		},
	}
}

func dynamicCardRequirements() []m.Requirement {
	return []m.Requirement{
		{
			Label: "Dynamic component accepts props (props param or destructuring) (lenient)",
			Check: c.AnyPattern(
				`\bfunction\s+\w+\s*\(\s*props\s*\)`,
				`\bfunction\s+\w+\s*\(\s*\{\s*[^}]*\}\s*\)`,
				`\bconst\s+\w+\s*=\s*\(\s*props\s*\)\s*=>`,
				`\bconst\s+\w+\s*=\s*\(\s*\{\s*[^}]*\}\s*\)\s*=>`,
			),
		},
		{
			Label: "Uses props values in JSX (props.name/id/department OR destructured vars) (lenient)",
			Check: c.AnyPattern(
				`\bprops\s*\.\s*name\b`,
				`\bprops\s*\.\s*id\b`,
				`\bprops\s*\.\s*department\b`,
				`\bprops\s*\.\s*dept\b`,
				`\{\s*name\s*\}`,
				`\{\s*id\s*\}`,
				`\{\s*department\s*\}`,
				`\{\s*dept\s*\}`,
			),
		},
		{
			Label: "Renders name in <h3> and other fields in <p> tags (lenient)",
			Check: c.AllOf(c.Pattern(`<h3[\s>]`), c.AtLeast(`<p[\s>]`, 2)),
		},
		{
			Label: "Exports default (lenient)",
			Check: defaultExport,
		},
	}
}

func appRequirements() []m.Requirement {
	return []m.Requirement{
		{
			Label: "Defines a students array (const/let) (lenient)",
			Check: c.AnyPattern(`\bconst\s+students\s*=\s*\[`, `\blet\s+students\s*=\s*\[`),
		},
		{
			Label: "Student objects include id, name, department (or dept) (lenient)",
			Check: c.AnyPattern(
				`\{\s*id\s*:\s*\d+`,
				"\\{\\s*name\\s*:\\s*[\"'`]",
				"\\{\\s*department\\s*:\\s*[\"'`]",
				"\\{\\s*dept\\s*:\\s*[\"'`]",
			),
		},
		{
			Label: "Uses map() to render cards (students.map(...)) (lenient)",
			Check: c.AnyPattern(`\bstudents\s*\.\s*map\s*\(`, `\.map\s*\(\s*\(\s*\w+\s*\)\s*=>`),
		},
		{
			Label: "Renders a Student card component in JSX (StudentCardDynamic/StudentCard etc.) (lenient)",
			Check: c.AnyPattern(
				`<\s*StudentCardDynamic\b`,
				`<\s*Student_Card_Static_Dynamic\b`,
				`<\s*StudentCard\b`,
			),
		},
		{
			Label: "Passes props from map item (name/id/department) (lenient)",
			Check: c.AnyPattern(
				`\bname\s*=\s*\{\s*\w+\s*\.\s*name\s*\}`,
				`\bid\s*=\s*\{\s*\w+\s*\.\s*id\s*\}`,
				`\bdepartment\s*=\s*\{\s*\w+\s*\.\s*department\s*\}`,
				`\bdept\s*=\s*\{\s*\w+\s*\.\s*dept\s*\}`,
			),
		},
		{
			Label: "Uses unique key prop (key={...}) (lenient)",
			Check: c.Pattern(`\bkey\s*=\s*\{\s*[^}]+\s*\}`),
		},
	}
}
