package normalize

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	resourcesHeaderRe = regexp.MustCompile(`(?i)^##\s*learning resources\b`)
	anyHeaderRe       = regexp.MustCompile(`^##\s+`)
	sourceMarkerRe    = regexp.MustCompile(`^-?\s*\[([^\]]+)\]?\s*$`)
	brokenLinkRe      = regexp.MustCompile(`(?i)^(.+?)\]\((https?://[^\s)]+)\)$`)
	bareURLRe         = regexp.MustCompile(`(?i)^(https?://\S+)$`)
	mdLinkRe          = regexp.MustCompile(`(?i)^-?\s*\**\s*\[([^\]]+)\]\((https?://[^\s)]+)\)\**\s*$`)
	labelJunkRe       = regexp.MustCompile(`^\s*[-*]+\s*`)

	frontendTrackRe = regexp.MustCompile(`\b(frontend|front end|react|javascript|typescript|css|html|ui)\b`)
	dataTrackRe     = regexp.MustCompile(`\b(data science|data analyst|machine learning|ml|ai|python|pandas|sql)\b`)
	devopsTrackRe   = regexp.MustCompile(`\b(devops|sre|cloud|docker|kubernetes|k8s|ci/cd|terraform|aws|azure|gcp)\b`)
	cyberTrackRe    = regexp.MustCompile(`\b(cyber|cybersecurity|security|soc|pentest|ethical hacking|owasp)\b`)

	// HasLearningResources reports whether the answer already carries the
	// section that roadmap answers must end with.
	hasResourcesRe = regexp.MustCompile(`(?im)^##\s*learning resources`)
)

// HasLearningResources reports whether a Learning Resources section header is
// present in the answer.
func HasLearningResources(text string) bool {
	return hasResourcesRe.MatchString(text)
}

// RoadmapTrack buckets a query into a learning track used to pick fallback
// resource links.
func RoadmapTrack(query string) string {
	q := strings.ToLower(query)
	switch {
	case frontendTrackRe.MatchString(q):
		return "frontend"
	case dataTrackRe.MatchString(q):
		return "data"
	case devopsTrackRe.MatchString(q):
		return "devops"
	case cyberTrackRe.MatchString(q):
		return "cyber"
	default:
		return "general"
	}
}

var trackResources = map[string][]string{
	"frontend": {
		"- **[MDN Web Docs](https://developer.mozilla.org/)**",
		"- **[React Docs](https://react.dev/learn)**",
		"- **[TypeScript Docs](https://www.typescriptlang.org/docs/)**",
	},
	"data": {
		"- **[Kaggle Learn](https://www.kaggle.com/learn)**",
		"- **[Scikit-learn User Guide](https://scikit-learn.org/stable/user_guide.html)**",
		"- **[Pandas Docs](https://pandas.pydata.org/docs/)**",
	},
	"devops": {
		"- **[Docker Docs](https://docs.docker.com/get-started/)**",
		"- **[Kubernetes Docs](https://kubernetes.io/docs/home/)**",
		"- **[Terraform Docs](https://developer.hashicorp.com/terraform/docs)**",
	},
	"cyber": {
		"- **[OWASP Top 10](https://owasp.org/www-project-top-ten/)**",
		"- **[TryHackMe Learning Paths](https://tryhackme.com/hacktivities)**",
		"- **[PortSwigger Web Security Academy](https://portswigger.net/web-security)**",
	},
	"general": {
		"- **[freeCodeCamp](https://www.freecodecamp.org/learn/)**",
		"- **[GeeksforGeeks Practice](https://www.geeksforgeeks.org/)**",
		"- **[LeetCode Problemset](https://leetcode.com/problemset/)**",
	},
}

// RoadmapResources builds a complete Learning Resources section for the query,
// used when a roadmap answer comes back without one.
func RoadmapResources(query string) string {
	searchQuery := query
	if searchQuery == "" {
		searchQuery = "tech skills"
	}
	courseQuery := query
	if courseQuery == "" {
		courseQuery = "tech roadmap"
	}
	common := []string{
		"- **[roadmap.sh](https://roadmap.sh)**",
		"- **[Coursera Search](https://www.coursera.org/search?query=" + url.QueryEscape(searchQuery) + ")**",
		"- **[YouTube Learning Path](https://www.youtube.com/results?search_query=" + url.QueryEscape(courseQuery+" full course") + ")**",
	}

	track, ok := trackResources[RoadmapTrack(query)]
	if !ok {
		track = trackResources["general"]
	}
	lines := append([]string{"## Learning Resources"}, track...)
	lines = append(lines, common...)
	return strings.Join(lines, "\n")
}

func cleanResourceLabel(value string) string {
	v := labelJunkRe.ReplaceAllString(strings.TrimSpace(value), "")
	v = strings.TrimPrefix(v, "[")
	v = strings.TrimSuffix(strings.TrimRight(v, " \t"), "]")
	return strings.TrimSpace(v)
}

// LearningResourceBlock repairs the Learning Resources section line by line:
// dangling source markers join the following link, broken and bare links are
// rebuilt as bold markdown bullets, blank lines inside the section are
// dropped, and plain lines are preserved as bullets. Text outside the section
// passes through untouched.
func LearningResourceBlock(text string) string {
	if text == "" {
		return text
	}

	var out []string
	inResources := false
	pendingSource := ""

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)

		if resourcesHeaderRe.MatchString(line) {
			inResources = true
			pendingSource = ""
			out = append(out, "## Learning Resources")
			continue
		}
		if inResources && anyHeaderRe.MatchString(line) {
			inResources = false
			pendingSource = ""
			out = append(out, raw)
			continue
		}
		if !inResources {
			out = append(out, raw)
			continue
		}
		if line == "" {
			continue
		}

		if m := sourceMarkerRe.FindStringSubmatch(line); m != nil {
			pendingSource = cleanResourceLabel(m[1])
			continue
		}

		// Valid link first: the broken-link pattern would also match it.
		if m := mdLinkRe.FindStringSubmatch(line); m != nil {
			label := cleanResourceLabel(m[1])
			if pendingSource != "" {
				label = pendingSource + " - " + label
				pendingSource = ""
			}
			out = append(out, "- **["+label+"]("+strings.TrimSpace(m[2])+")**")
			continue
		}

		if m := brokenLinkRe.FindStringSubmatch(line); m != nil {
			title := cleanResourceLabel(m[1])
			if pendingSource != "" {
				title = pendingSource + " - " + title
				pendingSource = ""
			}
			out = append(out, "- **["+title+"]("+strings.TrimSpace(m[2])+")**")
			continue
		}

		if m := bareURLRe.FindStringSubmatch(line); m != nil {
			label := pendingSource
			if label == "" {
				label = "Resource"
			}
			pendingSource = ""
			out = append(out, "- **["+label+"]("+m[1]+")**")
			continue
		}

		if pendingSource != "" {
			out = append(out, "- **"+pendingSource+"**: "+line)
			pendingSource = ""
		} else {
			out = append(out, "- "+line)
		}
	}

	return strings.Join(out, "\n")
}
