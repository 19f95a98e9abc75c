package format

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yaklabco/gogd/pkg/gdast"
	"github.com/yaklabco/gogd/pkg/parser"
)

// MemberKind classifies a class member for reordering. The declared order
// is the sort order: lower values come earlier in the file.
type MemberKind int

const (
	MemberTool MemberKind = iota
	MemberIcon
	MemberStaticUnload
	MemberClassName
	MemberExtends
	MemberDocComment
	MemberSignal
	MemberEnum
	MemberConst
	MemberStaticVar
	MemberExportVar
	MemberVar
	MemberOnreadyVar
	MemberStaticInit
	MemberStaticMethod
	MemberVirtualInit
	MemberVirtualEnterTree
	MemberVirtualReady
	MemberVirtualProcess
	MemberVirtualPhysicsProcess
	MemberVirtualOther
	MemberOverriddenCustomMethod
	MemberMethod
	MemberInnerClass
)

var memberKindNames = map[MemberKind]string{
	MemberTool:                   "tool annotation",
	MemberIcon:                   "icon annotation",
	MemberStaticUnload:           "static_unload annotation",
	MemberClassName:              "class_name",
	MemberExtends:                "extends",
	MemberDocComment:             "doc comment",
	MemberSignal:                 "signal",
	MemberEnum:                   "enum",
	MemberConst:                  "constant",
	MemberStaticVar:              "static variable",
	MemberExportVar:              "exported variable",
	MemberVar:                    "variable",
	MemberOnreadyVar:             "onready variable",
	MemberStaticInit:             "_static_init",
	MemberStaticMethod:           "static method",
	MemberVirtualInit:            "_init",
	MemberVirtualEnterTree:       "_enter_tree",
	MemberVirtualReady:           "_ready",
	MemberVirtualProcess:         "_process",
	MemberVirtualPhysicsProcess:  "_physics_process",
	MemberVirtualOther:           "virtual method",
	MemberOverriddenCustomMethod: "overridden method",
	MemberMethod:                 "method",
	MemberInnerClass:             "inner class",
}

func (k MemberKind) String() string {
	if s, ok := memberKindNames[k]; ok {
		return s
	}
	return "member"
}

// isHeader reports the kinds that cluster at the top with no blanks between.
func (k MemberKind) isHeader() bool {
	switch k {
	case MemberTool, MemberIcon, MemberStaticUnload, MemberClassName, MemberExtends:
		return true
	}
	return false
}

// isFunctionLike reports the kinds separated by two blank lines.
func (k MemberKind) isFunctionLike() bool {
	return k >= MemberStaticInit
}

// Declaration is one class member carried through reordering: its sort
// kind, its source text (whole lines, attached comments and section
// annotations included), and its original position for stable sorting.
type Declaration struct {
	Kind          MemberKind
	Text          string
	OriginalIndex int

	// HasDocComment marks members carrying an attached ## block; they always
	// get a blank line above, even next to a member of the same kind.
	HasDocComment bool

	// HasSectionAnnotation marks members under @export_group and friends,
	// which likewise keep a separating blank above.
	HasSectionAnnotation bool
}

var virtualMethodNames = map[string]MemberKind{
	"_init":                       MemberVirtualInit,
	"_enter_tree":                 MemberVirtualEnterTree,
	"_ready":                      MemberVirtualReady,
	"_process":                    MemberVirtualProcess,
	"_physics_process":            MemberVirtualPhysicsProcess,
	"_exit_tree":                  MemberVirtualOther,
	"_input":                      MemberVirtualOther,
	"_unhandled_input":            MemberVirtualOther,
	"_unhandled_key_input":        MemberVirtualOther,
	"_shortcut_input":             MemberVirtualOther,
	"_notification":               MemberVirtualOther,
	"_draw":                       MemberVirtualOther,
	"_gui_input":                  MemberVirtualOther,
	"_get_configuration_warnings": MemberVirtualOther,
	"_get_configuration_warning":  MemberVirtualOther,
}

// classifyMethod maps a function name to its slot: known virtuals in their
// fixed order, other underscore-prefixed names as overridden methods, the
// rest as regular methods.
func classifyMethod(name string) MemberKind {
	if k, ok := virtualMethodNames[name]; ok {
		return k
	}
	if strings.HasPrefix(name, "_") {
		return MemberOverriddenCustomMethod
	}
	return MemberMethod
}

func isExportAnnotation(name string) bool {
	return name == "export" || strings.HasPrefix(name, "export_")
}

func isSectionAnnotationLine(trimmed string) bool {
	return strings.HasPrefix(trimmed, "@export_group") ||
		strings.HasPrefix(trimmed, "@export_subgroup") ||
		strings.HasPrefix(trimmed, "@export_category")
}

// annotationNames collects the annotation identifiers attached to a
// declaration, plus "static" for the static keyword token.
func annotationNames(src []byte, n *gdast.Node) []string {
	var names []string
	if anns := n.FirstOfKind(gdast.KindAnnotations); anns != nil {
		for _, a := range anns.NamedChildren() {
			if name := a.ChildByField(gdast.FieldName); name != nil {
				names = append(names, name.Text(src))
			}
		}
	}
	for _, c := range n.Children {
		if !c.Named && c.Kind == gdast.KindPunct && c.Text(src) == "static" {
			names = append(names, "static")
		}
	}
	return names
}

// classifyStatement maps a top-level statement to its member kind, or
// returns ok=false for statements that do not take part in reordering.
func classifyStatement(src []byte, n *gdast.Node) (MemberKind, bool) {
	switch n.Kind {
	case gdast.KindClassNameStatement:
		return MemberClassName, true
	case gdast.KindExtendsStatement:
		return MemberExtends, true
	case gdast.KindSignalStatement:
		return MemberSignal, true
	case gdast.KindEnumDefinition:
		return MemberEnum, true
	case gdast.KindConstStatement:
		return MemberConst, true
	case gdast.KindClassDefinition:
		return MemberInnerClass, true
	case gdast.KindVariableStatement:
		names := annotationNames(src, n)
		for _, m := range names {
			if m == "onready" {
				return MemberOnreadyVar, true
			}
		}
		for _, m := range names {
			if isExportAnnotation(m) {
				return MemberExportVar, true
			}
		}
		for _, m := range names {
			if m == "static" {
				return MemberStaticVar, true
			}
		}
		return MemberVar, true
	case gdast.KindFunctionDefinition:
		name := ""
		if nameNode := n.ChildByField(gdast.FieldName); nameNode != nil {
			name = nameNode.Text(src)
		}
		static := false
		for _, m := range annotationNames(src, n) {
			if m == "static" {
				static = true
			}
		}
		if static {
			if name == "_static_init" {
				return MemberStaticInit, true
			}
			return MemberStaticMethod, true
		}
		return classifyMethod(name), true
	case gdast.KindAnnotation:
		if name := n.ChildByField(gdast.FieldName); name != nil {
			switch name.Text(src) {
			case "tool":
				return MemberTool, true
			case "icon":
				return MemberIcon, true
			case "static_unload":
				return MemberStaticUnload, true
			}
		}
		// Section annotations travel with the member below them.
		return 0, false
	default:
		return 0, false
	}
}

// ClassifyMember maps a class-scope statement to its MemberKind. It is the
// classification Reorder uses, shared with the class-definitions-order lint
// rule so the two agree on what the style guide order is.
func ClassifyMember(src []byte, n *gdast.Node) (MemberKind, bool) {
	return classifyStatement(src, n)
}

// Reorder rearranges the top-level declarations of source into the style
// guide order: file annotations, class_name, extends, doc comment, signals,
// enums, constants, variables by flavor, then methods by flavor, then inner
// classes. Inner class bodies are reordered recursively. Source already in
// order comes back byte for byte; files with skip regions covering any
// top-level declaration come back untouched.
func Reorder(source string) (string, error) {
	if strings.TrimSpace(source) == "" {
		return source, nil
	}
	tree, err := parser.Parse([]byte(source))
	if err != nil {
		return "", fmt.Errorf("parsing source: %w", err)
	}
	st := gdast.NewSourceText([]byte(source))
	skip := ParseSkipRegions(st)

	for _, child := range tree.Root.Children {
		if child.Named && skip.IsSkipped(startLine(child)) {
			return source, nil
		}
	}

	decls, ok := extractDeclarations(st, tree.Source, tree.Root.Children, 0)
	if !ok || len(decls) == 0 {
		return source, nil
	}

	sorted := make([]Declaration, len(decls))
	copy(sorted, decls)
	sortDeclarations(sorted)
	topChanged := false
	for i := range sorted {
		if sorted[i].OriginalIndex != decls[i].OriginalIndex {
			topChanged = true
			break
		}
	}

	innerChanged := false
	for i := range sorted {
		if sorted[i].Kind != MemberInnerClass {
			continue
		}
		reordered, err := reorderInnerClass(sorted[i].Text)
		if err != nil {
			return "", err
		}
		if reordered != sorted[i].Text {
			sorted[i].Text = reordered
			innerChanged = true
		}
	}

	if !topChanged && !innerChanged {
		return source, nil
	}

	result := reconstruct(sorted)
	if !strings.HasSuffix(result, "\n") {
		result += "\n"
	}
	return result, nil
}

// extractDeclarations turns the statements of a scope into sortable
// declarations. Lines above floor already belong to the enclosing header
// and are never claimed. Each declaration's text is extended upward over
// directly attached comment and section-annotation lines; function-like
// members may additionally have one blank line between their comment block
// and the header. In the remaining gaps, free-standing ## blocks become
// doc-comment declarations of their own and free-standing plain comment
// blocks ride along with the next declaration so nothing is dropped. ok is
// false when the scope contains a statement that cannot be classified, in
// which case reordering is unsafe and the caller bails out.
func extractDeclarations(st *gdast.SourceText, src []byte, children []*gdast.Node, floor int) ([]Declaration, bool) {
	var decls []Declaration
	index := 0
	coveredTo := floor // last source line already claimed

	// scanGap peels ## blocks into doc-comment declarations and returns any
	// leftover plain comment lines for the caller to reattach.
	scanGap := func(from, to int) []string {
		var leftovers []string
		n := from
		for n <= to {
			trimmed := strings.TrimSpace(st.Line(n))
			if strings.HasPrefix(trimmed, "##") {
				block := n
				for block+1 <= to && strings.HasPrefix(strings.TrimSpace(st.Line(block+1)), "##") {
					block++
				}
				decls = append(decls, Declaration{
					Kind:          MemberDocComment,
					Text:          linesText(st, n, block),
					OriginalIndex: index,
				})
				index++
				n = block + 1
				continue
			}
			if strings.HasPrefix(trimmed, "#") {
				leftovers = append(leftovers, st.Line(n))
			}
			n++
		}
		return leftovers
	}

	for _, child := range children {
		if !child.Named {
			continue
		}
		kind, ok := classifyStatement(src, child)
		if !ok {
			if child.Kind == gdast.KindAnnotation {
				continue
			}
			return nil, false
		}

		start := startLine(child)
		start, hasDoc, hasSection := attachPrecedingLines(st, start, coveredTo, kind)

		var prefix strings.Builder
		for _, line := range scanGap(coveredTo+1, start-1) {
			prefix.WriteString(line)
			prefix.WriteByte('\n')
		}

		decls = append(decls, Declaration{
			Kind:                 kind,
			Text:                 prefix.String() + linesText(st, start, endLine(child)),
			OriginalIndex:        index,
			HasDocComment:        hasDoc,
			HasSectionAnnotation: hasSection,
		})
		index++
		coveredTo = endLine(child)
	}

	trailing := scanGap(coveredTo+1, st.LineCount())
	if len(trailing) > 0 && len(decls) > 0 {
		last := &decls[len(decls)-1]
		for _, line := range trailing {
			last.Text += line + "\n"
		}
	}

	return decls, true
}

// attachPrecedingLines walks upward from a declaration's first line over
// comments, doc comments, and section annotations that belong to it.
func attachPrecedingLines(st *gdast.SourceText, start, floor int, kind MemberKind) (newStart int, hasDoc, hasSection bool) {
	allowBlank := kind.isFunctionLike()
	for start-1 > floor {
		trimmed := strings.TrimSpace(st.Line(start - 1))
		switch {
		case strings.HasPrefix(trimmed, "##"):
			hasDoc = true
			start--
		case strings.HasPrefix(trimmed, "#"):
			start--
		case isSectionAnnotationLine(trimmed):
			hasSection = true
			start--
		case trimmed == "" && allowBlank:
			// One blank between a comment block and a function header keeps
			// the block attached.
			above := strings.TrimSpace(st.Line(start - 2))
			if start-2 > floor && strings.HasPrefix(above, "#") {
				allowBlank = false
				start--
				continue
			}
			return start, hasDoc, hasSection
		default:
			return start, hasDoc, hasSection
		}
	}
	return start, hasDoc, hasSection
}

// linesText joins whole source lines from..to inclusive, each terminated
// with a newline.
func linesText(st *gdast.SourceText, from, to int) string {
	var b strings.Builder
	for n := from; n <= to; n++ {
		b.WriteString(st.Line(n))
		b.WriteByte('\n')
	}
	return b.String()
}

// sortDeclarations orders by kind, keeping source order within a kind.
func sortDeclarations(decls []Declaration) {
	sort.SliceStable(decls, func(i, j int) bool {
		if decls[i].Kind != decls[j].Kind {
			return decls[i].Kind < decls[j].Kind
		}
		return decls[i].OriginalIndex < decls[j].OriginalIndex
	})
}

// reorderBlankLines returns the separation between two reordered members.
func reorderBlankLines(prev, next Declaration) int {
	switch {
	case prev.Kind.isHeader() && next.Kind.isHeader():
		return 0
	case prev.Kind.isFunctionLike() || next.Kind.isFunctionLike():
		return 2
	case prev.Kind == MemberDocComment || next.Kind == MemberDocComment:
		return 1
	case prev.Kind == next.Kind:
		if next.HasDocComment || next.HasSectionAnnotation {
			return 1
		}
		return 0
	default:
		return 1
	}
}

func reconstruct(decls []Declaration) string {
	var b strings.Builder
	for i, decl := range decls {
		if i > 0 {
			for blanks := reorderBlankLines(decls[i-1], decl); blanks > 0; blanks-- {
				b.WriteByte('\n')
			}
		}
		b.WriteString(decl.Text)
	}
	return b.String()
}

// reorderInnerClass reorders the body of one inner class given its full
// text, header line included, and recurses into nested classes.
func reorderInnerClass(classText string) (string, error) {
	tree, err := parser.Parse([]byte(classText))
	if err != nil {
		return "", fmt.Errorf("parsing inner class: %w", err)
	}

	var classNode *gdast.Node
	gdast.Walk(tree.Root, func(n *gdast.Node) bool {
		if classNode != nil {
			return false
		}
		if n.Kind == gdast.KindClassDefinition {
			classNode = n
			return false
		}
		return true
	})
	if classNode == nil {
		return classText, nil
	}
	body := classNode.ChildByField(gdast.FieldBody)
	if body == nil || !isMultiline(classNode) {
		return classText, nil
	}

	st := gdast.NewSourceText([]byte(classText))
	skip := ParseSkipRegions(st)
	for _, child := range body.Children {
		if child.Named && skip.IsSkipped(startLine(child)) {
			return classText, nil
		}
	}

	headerLine := startLine(classNode)
	decls, ok := extractDeclarations(st, tree.Source, body.Children, headerLine)
	if !ok || len(decls) == 0 {
		return classText, nil
	}
	sortDeclarations(decls)

	for i := range decls {
		if decls[i].Kind != MemberInnerClass {
			continue
		}
		reordered, err := reorderInnerClass(decls[i].Text)
		if err != nil {
			return "", err
		}
		decls[i].Text = reordered
	}

	var b strings.Builder
	for n := 1; n <= headerLine; n++ {
		b.WriteString(st.Line(n))
		b.WriteByte('\n')
	}
	b.WriteString(reconstruct(decls))
	return b.String(), nil
}
