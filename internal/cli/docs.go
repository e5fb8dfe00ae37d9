package cli

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	builtindocs "github.com/aidanlsb/epoch/docs"
	"github.com/aidanlsb/epoch/internal/ui"
)

const (
	docsCommandHint = "For command docs, use: epoch help <command>"
	docsIndexPath   = "index.yaml"
)

var (
	docsSearchLimit int

	docsLookPath         = exec.LookPath
	docsFZFRun           = runDocsFZF
	docsStdinIsTerminal  = func() bool { return isatty.IsTerminal(os.Stdin.Fd()) }
	docsStdoutIsTerminal = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd())
	}
	docsDisplayContext = ui.NewDisplayContext
	docsMarkdownRender = ui.RenderMarkdown
)

type docsFZFRunFunc func(lines []string, prompt, header string) (selectionLine string, selected bool, err error)

type docsTopicView struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Path  string `json:"path"`
}

type docsSearchMatchView struct {
	Topic   string `json:"topic"`
	Title   string `json:"title"`
	Path    string `json:"path"`
	Line    int    `json:"line"`
	Snippet string `json:"snippet"`
}

type docsTopicRecord struct {
	ID        string
	Title     string
	Path      string
	FSPath    string
	sortOrder *int
}

type docsIndex struct {
	Topics     map[string]docsIndexTopicMeta
	TopicOrder map[string]int
}

type docsIndexTopicMeta struct {
	Title string `yaml:"title"`
	Path  string `yaml:"path"`
}

var docsCmd = &cobra.Command{
	Use:   "docs [topic]",
	Short: "Browse long-form Markdown documentation",
	Long: `Browse long-form documentation bundled into the epoch binary.

Use this command for guides on deltas, zones, precision, and config.
When run in a terminal with fzf installed, 'epoch docs' opens an
interactive selector. For command-level usage, use 'epoch help <command>'.

Examples:
  epoch docs
  epoch docs list
  epoch docs deltas
  epoch docs search "truncate"`,
	Args: cobra.RangeArgs(0, 1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topics, err := listBundledDocsTopics()
		if err != nil {
			return handleError(ErrInternal, err, "Rebuild epoch so bundled docs are available")
		}

		if len(args) == 0 {
			if shouldUseDocsFZFNavigator() {
				if err := runDocsFZFNavigator(topics); err != nil {
					return handleError(ErrInternal, err, "Run 'epoch docs list' for non-interactive output")
				}
				return nil
			}
			return outputDocsTopics(topics)
		}

		topic, ok := findDocsTopic(topics, args[0])
		if !ok {
			return docsTopicNotFound(args[0], topics)
		}

		return outputDocsTopicContent(topic)
	},
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List docs topics and topic commands",
	Long: `List docs topics with explicit topic command syntax.

Use this to see exactly which 'epoch docs <topic>' commands are available.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		topics, err := listBundledDocsTopics()
		if err != nil {
			return handleError(ErrInternal, err, "Rebuild epoch so bundled docs are available")
		}
		return outputDocsTopics(topics)
	},
}

var docsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search long-form Markdown documentation",
	Long: `Search long-form documentation bundled into the epoch binary.

Examples:
  epoch docs search truncate
  epoch docs search "calendar day" --limit 10`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(strings.Join(args, " "))
		if query == "" {
			return handleErrorMsg(ErrMissingArgument, "specify a search query", "Usage: epoch docs search <query>")
		}
		if docsSearchLimit < 1 {
			return handleErrorMsg(ErrInvalidInput, "--limit must be >= 1", "")
		}

		matches, err := searchDocsFS(builtindocs.FS, ".", query, docsSearchLimit)
		if err != nil {
			return handleError(ErrInvalidInput, err, "Run 'epoch docs' to list topics")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"query":   query,
				"count":   len(matches),
				"matches": matches,
			}, &Meta{Count: len(matches)})
			return nil
		}

		if len(matches) == 0 {
			fmt.Printf("No docs matched %q.\n", query)
			return nil
		}

		fmt.Printf("Matches for %q (%d):\n", query, len(matches))
		list := ui.NewList()
		for _, m := range matches {
			list.Add(fmt.Sprintf("%s:%d %s", m.Topic, m.Line, m.Snippet))
		}
		fmt.Print(list.String())
		return nil
	},
}

func outputDocsTopics(topics []docsTopicRecord) error {
	if isJSONOutput() {
		items := make([]docsTopicView, 0, len(topics))
		for _, t := range topics {
			items = append(items, docsTopicView{
				ID:    t.ID,
				Title: t.Title,
				Path:  t.Path,
			})
		}
		outputSuccess(map[string]interface{}{
			"topics":         items,
			"command_docs":   "epoch help <command>",
			"navigation_tip": "epoch docs <topic>",
		}, &Meta{Count: len(items)})
		return nil
	}

	fmt.Println("Documentation topic commands:")
	tbl := ui.NewTable(2)
	for _, t := range topics {
		tbl.AddRow(fmt.Sprintf("  epoch docs %s", t.ID), t.Title)
	}
	fmt.Print(tbl.String())
	fmt.Println()
	fmt.Println("General docs commands:")
	fmt.Println("  epoch docs list             List topics and topic commands")
	fmt.Println("  epoch docs <topic>          Open a docs topic")
	fmt.Println("  epoch docs search <query>   Search docs")
	fmt.Println("  epoch help <command>        Command docs")
	return nil
}

func outputDocsTopicContent(topic docsTopicRecord) error {
	content, err := fs.ReadFile(builtindocs.FS, topic.FSPath)
	if err != nil {
		return handleError(ErrFileReadError, err, "")
	}

	if isJSONOutput() {
		outputSuccess(map[string]interface{}{
			"topic":   topic.ID,
			"title":   topic.Title,
			"path":    topic.Path,
			"content": string(content),
		}, nil)
		return nil
	}

	renderedContent := string(content)
	display := docsDisplayContext()
	if display.IsTTY {
		if rendered, renderErr := docsMarkdownRender(string(content), display.TermWidth); renderErr == nil {
			renderedContent = rendered
		}
	}

	fmt.Printf("Path: %s\n\n", topic.Path)
	fmt.Print(renderedContent)
	if !strings.HasSuffix(renderedContent, "\n") {
		fmt.Println()
	}
	return nil
}

func shouldUseDocsFZFNavigator() bool {
	if isJSONOutput() {
		return false
	}
	if !docsStdinIsTerminal() || !docsStdoutIsTerminal() {
		return false
	}
	_, err := docsLookPath("fzf")
	return err == nil
}

func runDocsFZFNavigator(topics []docsTopicRecord) error {
	topic, ok, err := pickDocsTopicWithFZF(topics)
	if err != nil || !ok {
		return err
	}
	return outputDocsTopicContent(topic)
}

func pickDocsTopicWithFZF(topics []docsTopicRecord) (docsTopicRecord, bool, error) {
	lines := make([]string, 0, len(topics))
	for _, topic := range topics {
		lines = append(lines, fmt.Sprintf("%s\t%s", topic.ID, topic.Title))
	}

	selectedLine, selected, err := docsFZFRun(lines, "docs> ", "Select a docs topic (Esc to cancel)")
	if err != nil {
		return docsTopicRecord{}, false, err
	}
	if !selected {
		return docsTopicRecord{}, false, nil
	}

	topicID := docsFZFSelectionID(selectedLine)
	topic, ok := findDocsTopic(topics, topicID)
	if !ok {
		return docsTopicRecord{}, false, fmt.Errorf("selected unknown docs topic %q", topicID)
	}
	return topic, true, nil
}

func docsFZFSelectionID(line string) string {
	line = strings.TrimSpace(line)
	if line == "" {
		return ""
	}
	parts := strings.SplitN(line, "\t", 2)
	return strings.TrimSpace(parts[0])
}

func runDocsFZF(lines []string, prompt, header string) (string, bool, error) {
	if len(lines) == 0 {
		return "", false, nil
	}

	args := []string{
		"--layout=reverse",
		"--height=80%",
		"--border",
		"--prompt", prompt,
		"--delimiter", "\t",
		"--with-nth", "2..",
		"--select-1",
		"--exit-0",
	}
	if strings.TrimSpace(header) != "" {
		args = append(args, "--header", header)
	}

	cmd := exec.Command("fzf", args...)
	cmd.Stdin = strings.NewReader(strings.Join(lines, "\n") + "\n")

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if code := exitErr.ExitCode(); code == 1 || code == 130 {
				return "", false, nil
			}
		}
		return "", false, fmt.Errorf("run fzf selector: %w", err)
	}

	selection := strings.TrimSpace(stdout.String())
	if selection == "" {
		return "", false, nil
	}
	return selection, true, nil
}

func docsTopicNotFound(topicInput string, topics []docsTopicRecord) error {
	if cmdName, ok := resolveCLICommandName(topicInput); ok {
		return handleErrorMsg(
			ErrInvalidInput,
			fmt.Sprintf("%q is a CLI command, not a docs topic", cmdName),
			fmt.Sprintf("Use 'epoch help %s' for command documentation", cmdName),
		)
	}

	if isCommandTopicAlias(topicInput) {
		return handleErrorMsg(
			ErrInvalidInput,
			"command docs are not part of 'epoch docs'",
			docsCommandHint,
		)
	}

	available := make([]string, 0, len(topics))
	for _, t := range topics {
		available = append(available, t.ID)
	}
	sort.Strings(available)

	return handleErrorMsg(
		ErrInvalidInput,
		fmt.Sprintf("unknown docs topic: %s", topicInput),
		fmt.Sprintf("Run 'epoch docs' to list topics (available: %s)", strings.Join(available, ", ")),
	)
}

func listDocsTopics(docsRoot string) ([]docsTopicRecord, error) {
	return listDocsTopicsFS(os.DirFS(docsRoot), ".")
}

func listBundledDocsTopics() ([]docsTopicRecord, error) {
	return listDocsTopicsFS(builtindocs.FS, ".")
}

func listDocsTopicsFS(docsFS fs.FS, docsRoot string) ([]docsTopicRecord, error) {
	index, err := loadDocsIndexFS(docsFS, docsRoot)
	if err != nil {
		return nil, err
	}
	if len(index.Topics) == 0 {
		return nil, fmt.Errorf("docs index has no topics")
	}

	records := make([]docsTopicRecord, 0, len(index.Topics))
	seenPaths := make(map[string]string)

	for topicID, meta := range index.Topics {
		relPath, fsPath, err := resolveDocsTopicPath(docsRoot, meta.Path)
		if err != nil {
			return nil, fmt.Errorf("docs index topic %q: %w", topicID, err)
		}
		if previousID, exists := seenPaths[relPath]; exists {
			return nil, fmt.Errorf("docs index maps duplicate path %q to topics %q and %q", relPath, previousID, topicID)
		}
		seenPaths[relPath] = topicID

		fileInfo, err := fs.Stat(docsFS, fsPath)
		if err != nil {
			return nil, fmt.Errorf("docs index topic %q points to missing file %q: %w", topicID, relPath, err)
		}
		if fileInfo.IsDir() {
			return nil, fmt.Errorf("docs index topic %q path %q is a directory", topicID, relPath)
		}

		title := extractDocsTitleFS(docsFS, fsPath, topicID)
		if override := strings.TrimSpace(meta.Title); override != "" {
			title = override
		}
		records = append(records, docsTopicRecord{
			ID:        topicID,
			Title:     title,
			Path:      path.Join("docs", relPath),
			FSPath:    fsPath,
			sortOrder: docsSortOrder(index.TopicOrder, topicID),
		})
	}

	sort.Slice(records, func(i, j int) bool {
		return docsSortLess(records[i].sortOrder, records[j].sortOrder, records[i].ID, records[j].ID)
	})
	return records, nil
}

func loadDocsIndexFS(docsFS fs.FS, docsRoot string) (docsIndex, error) {
	index := docsIndex{
		Topics:     make(map[string]docsIndexTopicMeta),
		TopicOrder: make(map[string]int),
	}
	raw, err := fs.ReadFile(docsFS, path.Join(docsRoot, docsIndexPath))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return docsIndex{}, fmt.Errorf("docs index not found at %s", path.Join(docsRoot, docsIndexPath))
		}
		return docsIndex{}, fmt.Errorf("read docs index: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return docsIndex{}, fmt.Errorf("parse docs index: %w", err)
	}
	if len(root.Content) == 0 {
		return index, nil
	}
	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return docsIndex{}, fmt.Errorf("parse docs index: top-level YAML must be a mapping")
	}
	for i := 0; i+1 < len(top.Content); i += 2 {
		key := strings.TrimSpace(top.Content[i].Value)
		value := top.Content[i+1]
		switch key {
		case "topics":
			if err := decodeDocsTopicsNode(value, &index); err != nil {
				return docsIndex{}, fmt.Errorf("parse docs index topics: %w", err)
			}
		default:
			return docsIndex{}, fmt.Errorf("parse docs index: unknown top-level field %q", key)
		}
	}

	return index, nil
}

func resolveDocsTopicPath(docsRoot, rawPath string) (string, string, error) {
	relPath := strings.ReplaceAll(strings.TrimSpace(rawPath), "\\", "/")
	if relPath == "" {
		return "", "", fmt.Errorf("missing required field \"path\"")
	}
	cleanPath := path.Clean(relPath)
	if cleanPath == "." || cleanPath == "/" {
		return "", "", fmt.Errorf("invalid topic path %q", relPath)
	}
	if strings.HasPrefix(cleanPath, "/") || cleanPath == ".." || strings.HasPrefix(cleanPath, "../") {
		return "", "", fmt.Errorf("topic path %q must be relative to the docs directory", relPath)
	}
	if strings.ToLower(filepath.Ext(cleanPath)) != ".md" {
		return "", "", fmt.Errorf("topic path %q must end with .md", relPath)
	}

	segments := strings.Split(cleanPath, "/")
	for _, segment := range segments {
		if !isPublicDocsName(segment) {
			return "", "", fmt.Errorf("topic path %q includes hidden/private segment %q", relPath, segment)
		}
	}

	return cleanPath, path.Join(docsRoot, cleanPath), nil
}

func decodeDocsTopicsNode(node *yaml.Node, index *docsIndex) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("topics must be a mapping")
	}

	position := 0
	for i := 0; i+1 < len(node.Content); i += 2 {
		topicID := strings.TrimSpace(node.Content[i].Value)
		if topicID == "" {
			return fmt.Errorf("topics contains an empty topic key")
		}
		if normalizeDocsSegment(topicID) != topicID {
			return fmt.Errorf("topic id %q must use normalized slug format", topicID)
		}
		if _, exists := index.Topics[topicID]; exists {
			return fmt.Errorf("duplicate topic %q", topicID)
		}

		var meta docsIndexTopicMeta
		if err := node.Content[i+1].Decode(&meta); err != nil {
			return fmt.Errorf("topic %q metadata: %w", topicID, err)
		}
		meta.Title = strings.TrimSpace(meta.Title)
		meta.Path = strings.TrimSpace(meta.Path)
		if meta.Path == "" {
			return fmt.Errorf("topic %q is missing required field \"path\"", topicID)
		}

		index.Topics[topicID] = meta
		index.TopicOrder[topicID] = position
		position++
	}

	if len(index.Topics) == 0 {
		return fmt.Errorf("topics mapping is empty")
	}
	return nil
}

func docsSortOrder(orderByID map[string]int, id string) *int {
	order, ok := orderByID[id]
	if !ok {
		return nil
	}
	out := order
	return &out
}

func docsSortLess(orderA, orderB *int, idA, idB string) bool {
	if orderA == nil && orderB == nil {
		return idA < idB
	}
	if orderA == nil {
		return false
	}
	if orderB == nil {
		return true
	}
	if *orderA != *orderB {
		return *orderA < *orderB
	}
	return idA < idB
}

func findDocsTopic(topics []docsTopicRecord, raw string) (docsTopicRecord, bool) {
	trimmed := strings.TrimSpace(strings.TrimSuffix(raw, ".md"))
	needle := normalizeDocsSegment(trimmed)
	for _, topic := range topics {
		if topic.ID == needle {
			return topic, true
		}
	}
	return docsTopicRecord{}, false
}

func searchDocsFS(docsFS fs.FS, docsRoot, query string, limit int) ([]docsSearchMatchView, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty query")
	}
	if limit < 1 {
		return nil, fmt.Errorf("limit must be >= 1")
	}

	topics, err := listDocsTopicsFS(docsFS, docsRoot)
	if err != nil {
		return nil, err
	}

	queryLower := strings.ToLower(query)
	matches := make([]docsSearchMatchView, 0, limit)

	for _, topic := range topics {
		content, err := fs.ReadFile(docsFS, topic.FSPath)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", topic.Path, err)
		}

		lines := strings.Split(string(content), "\n")
		for i, line := range lines {
			if !strings.Contains(strings.ToLower(line), queryLower) {
				continue
			}

			matches = append(matches, docsSearchMatchView{
				Topic:   topic.ID,
				Title:   topic.Title,
				Path:    topic.Path,
				Line:    i + 1,
				Snippet: shortenDocsSnippet(line, queryLower),
			})
			if len(matches) >= limit {
				return matches, nil
			}
		}
	}

	return matches, nil
}

func shortenDocsSnippet(line, queryLower string) string {
	const maxLen = 160
	snippet := strings.TrimSpace(line)
	if snippet == "" {
		return "(blank line)"
	}
	if len(snippet) <= maxLen {
		return snippet
	}

	idx := strings.Index(strings.ToLower(snippet), queryLower)
	if idx < 0 {
		return snippet[:maxLen-1] + "..."
	}

	start := idx - 50
	if start < 0 {
		start = 0
	}
	end := start + maxLen
	if end > len(snippet) {
		end = len(snippet)
	}
	out := snippet[start:end]
	if start > 0 {
		out = "..." + out
	}
	if end < len(snippet) {
		out += "..."
	}
	return out
}

func extractDocsTitleFS(docsFS fs.FS, docsPath, fallbackSlug string) string {
	f, err := docsFS.Open(docsPath)
	if err != nil {
		return titleFromSlug(path.Base(fallbackSlug))
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "# ") {
			title := strings.TrimSpace(strings.TrimPrefix(line, "# "))
			if title != "" {
				return title
			}
		}
	}

	return titleFromSlug(path.Base(fallbackSlug))
}

func isPublicDocsName(name string) bool {
	if name == "" {
		return false
	}
	return !strings.HasPrefix(name, ".") && !strings.HasPrefix(name, "_")
}

func normalizeDocsSegment(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "_", "-")
	s = strings.ReplaceAll(s, " ", "-")
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return strings.Trim(s, "-")
}

func titleFromSlug(slug string) string {
	parts := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '-' || r == '_'
	})
	if len(parts) == 0 {
		return slug
	}
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}

func isCommandTopicAlias(raw string) bool {
	normalized := normalizeDocsSegment(raw)
	return normalized == "command" || normalized == "commands"
}

func resolveCLICommandName(raw string) (string, bool) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", false
	}
	for _, child := range rootCmd.Commands() {
		if child.Name() == "docs" {
			continue
		}
		if child.Name() == name || child.HasAlias(name) {
			return child.Name(), true
		}
	}
	return "", false
}

func init() {
	docsSearchCmd.Flags().IntVarP(&docsSearchLimit, "limit", "n", 20, "Maximum number of matches")

	docsCmd.AddCommand(docsListCmd)
	docsCmd.AddCommand(docsSearchCmd)
	rootCmd.AddCommand(docsCmd)
}
