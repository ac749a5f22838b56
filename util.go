package tablecreator

import (
	"strconv"
	"strings"
)

// parseTagOptions reads the option part of a struct tag. Options are
// separated by commas or spaces; a bare option is true and an option may
// carry an explicit value, e.g. "readonly" or "autoincrement=false".
func parseTagOptions(parts []string) map[string]bool {
	opts := make(map[string]bool)
	for _, part := range parts {
		for _, v := range strings.Fields(part) {
			varr := strings.SplitN(v, "=", 2)
			key := strings.ToLower(strings.TrimSpace(varr[0]))
			if key == "" {
				continue
			}

			val := true
			if len(varr) > 1 {
				if b, err := strconv.ParseBool(strings.TrimSpace(varr[1])); err == nil {
					val = b
				}
			}

			opts[key] = val
		}
	}

	return opts
}

// parseColumnTag splits `column:"name,treatnullasdefault,readonly"`.
func parseColumnTag(value string) (name string, treatNullAsDefault bool, readonly bool) {
	tagArr := strings.Split(value, ",")
	name = strings.TrimSpace(tagArr[0])
	opts := parseTagOptions(tagArr[1:])

	return name, opts["treatnullasdefault"], opts["readonly"]
}

// parsePrimaryKeyTag reads `primarykey:"autoincrement=false,readonly"`.
// autoincrement defaults to true.
func parsePrimaryKeyTag(value string) (autoIncrement bool, readonly bool) {
	opts := parseTagOptions(strings.Split(value, ","))
	autoIncrement = true
	if v, ok := opts["autoincrement"]; ok {
		autoIncrement = v
	}

	return autoIncrement, opts["readonly"]
}

func parseUniqueTag(value string) (readonly bool) {
	return parseTagOptions(strings.Split(value, ","))["readonly"]
}

func Map[In any, Out any](list []In, mapFn func(val In) Out) []Out {
	var newSlice = make([]Out, len(list))
	for i, val := range list {
		newSlice[i] = mapFn(val)
	}

	return newSlice
}
