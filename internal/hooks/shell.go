package hooks

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/template"
)

// ScriptOptions configures the generated shell integration.
type ScriptOptions struct {
	// Binary is the command used to invoke flow, e.g. "command flow".
	Binary string
	// Root is the project root passed to search and clone.
	Root string
}

var scripts = map[string]*template.Template{
	"zsh":  mustParse("zsh", zshScript),
	"bash": mustParse("bash", bashScript),
	"fish": mustParse("fish", fishScript),
}

// Shells returns the supported shell names.
func Shells() []string {
	out := make([]string, 0, len(scripts))
	for name := range scripts {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// WriteScript renders the integration for shell to w.
func WriteScript(w io.Writer, shell string, opts ScriptOptions) error {
	tmpl, ok := scripts[shell]
	if !ok {
		return fmt.Errorf("unsupported shell %q (want one of %s)", shell, strings.Join(Shells(), ", "))
	}
	if opts.Binary == "" {
		opts.Binary = "command flow"
	}
	return tmpl.Execute(w, opts)
}

func mustParse(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(template.FuncMap{"quote": shellQuote}).Parse(text))
}

// shellQuote wraps s in single quotes for POSIX shells and fish.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

const zshScript = `fs() {
	_flow_dir=$({{.Binary}} --root {{quote .Root}} search "$@")
	_flow_ret=$?
	[ -n "$_flow_dir" ] && [ "$_flow_dir" != "$PWD" ] && cd "$_flow_dir"
	return $_flow_ret
}
fsp() {
	_flow_dir=$({{.Binary}} --root {{quote .Root}} search --project "$@")
	_flow_ret=$?
	[ -n "$_flow_dir" ] && [ "$_flow_dir" != "$PWD" ] && cd "$_flow_dir"
	return $_flow_ret
}
fp() {
	_flow_dir=$({{.Binary}} --root {{quote .Root}} clone "$@")
	_flow_ret=$?
	[ -n "$_flow_dir" ] && [ "$_flow_dir" != "$PWD" ] && cd "$_flow_dir"
	return $_flow_ret
}
_flow_precmd() {
	({{.Binary}} add "${PWD:A}" &)
}
[[ -n "${precmd_functions[(r)_flow_precmd]}" ]] || {
	precmd_functions[$(($#precmd_functions+1))]=_flow_precmd
}
`

const bashScript = `fs() {
	local _flow_dir _flow_ret
	_flow_dir=$({{.Binary}} --root {{quote .Root}} search "$@")
	_flow_ret=$?
	[ -n "$_flow_dir" ] && [ "$_flow_dir" != "$PWD" ] && cd "$_flow_dir"
	return $_flow_ret
}
fsp() {
	local _flow_dir _flow_ret
	_flow_dir=$({{.Binary}} --root {{quote .Root}} search --project "$@")
	_flow_ret=$?
	[ -n "$_flow_dir" ] && [ "$_flow_dir" != "$PWD" ] && cd "$_flow_dir"
	return $_flow_ret
}
fp() {
	local _flow_dir _flow_ret
	_flow_dir=$({{.Binary}} --root {{quote .Root}} clone "$@")
	_flow_ret=$?
	[ -n "$_flow_dir" ] && [ "$_flow_dir" != "$PWD" ] && cd "$_flow_dir"
	return $_flow_ret
}
_flow_prompt() {
	({{.Binary}} add "$(pwd -P)" &)
}
case ";${PROMPT_COMMAND:-};" in
	*";_flow_prompt;"*) ;;
	*) PROMPT_COMMAND="_flow_prompt${PROMPT_COMMAND:+;$PROMPT_COMMAND}" ;;
esac
`

const fishScript = `function fs -d "fast switch to directory"
	set -l _flow_dir ({{.Binary}} --root {{quote .Root}} search $argv)
	set -l _flow_ret $status
	if test -n "$_flow_dir"; and test "$_flow_dir" != (pwd)
		cd "$_flow_dir"
	end
	return $_flow_ret
end
function fsp -d "fast switch to project"
	set -l _flow_dir ({{.Binary}} --root {{quote .Root}} search --project $argv)
	set -l _flow_ret $status
	if test -n "$_flow_dir"; and test "$_flow_dir" != (pwd)
		cd "$_flow_dir"
	end
	return $_flow_ret
end
function fp -d "fast clone project"
	set -l _flow_dir ({{.Binary}} --root {{quote .Root}} clone $argv)
	set -l _flow_ret $status
	if test -n "$_flow_dir"; and test "$_flow_dir" != (pwd)
		cd "$_flow_dir"
	end
	return $_flow_ret
end
function _flow_add_directory --on-event fish_prompt
	{{.Binary}} add "$PWD" &
end
`
