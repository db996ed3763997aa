package stats

import (
	"path/filepath"
	"strings"
)

// Language is the display name of a recognized source language.
type Language string

const (
	LangGo         Language = "Go"
	LangTypeScript Language = "TypeScript"
	LangPython     Language = "Python"
	LangJavaScript Language = "JavaScript"
	LangHTML       Language = "HTML"
	LangCSS        Language = "CSS"
	LangCPP        Language = "C++"
	LangC          Language = "C"
	LangCMake      Language = "CMake"
	LangJSON       Language = "JSON"
	LangMarkdown   Language = "Markdown"
	LangJenkins    Language = "Jenkins"
	LangDocker     Language = "Docker"
	LangBash       Language = "Bash"
	LangBatchfile  Language = "Batchfile"
)

var specialFiles = map[string]Language{
	"CMakeLists.txt": LangCMake,
	"Dockerfile":     LangDocker,
	"Jenkinsfile":    LangJenkins,
}

var extensions = map[string]Language{
	".go":    LangGo,
	".ts":    LangTypeScript,
	".c":     LangC,
	".h":     LangC,
	".cpp":   LangCPP,
	".hpp":   LangCPP,
	".py":    LangPython,
	".pyi":   LangPython,
	".js":    LangJavaScript,
	".cjs":   LangJavaScript,
	".html":  LangHTML,
	".htm":   LangHTML,
	".md":    LangMarkdown,
	".json":  LangJSON,
	".sh":    LangBash,
	".bash":  LangBash,
	".css":   LangCSS,
	".cmake": LangCMake,
	".bat":   LangBatchfile,
}

// DetectLanguage maps a file path to its language. The second return is
// false for files the scanner does not understand.
func DetectLanguage(path string) (Language, bool) {
	base := filepath.Base(path)
	if lang, ok := specialFiles[base]; ok {
		return lang, true
	}
	ext := strings.ToLower(strings.TrimSpace(filepath.Ext(base)))
	lang, ok := extensions[ext]
	return lang, ok
}

// slashComment covers languages with // line comments and /* */ blocks.
func slashComment(lang Language) bool {
	switch lang {
	case LangGo, LangC, LangCPP, LangTypeScript, LangJavaScript, LangJenkins:
		return true
	}
	return false
}

// hashComment covers languages with # line comments.
func hashComment(lang Language) bool {
	switch lang {
	case LangPython, LangCMake, LangBash, LangDocker:
		return true
	}
	return false
}
