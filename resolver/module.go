package resolver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Grupo-MACC/entrypoint/errors"
)

// appBinding matches a module-level `app` assignment in Python source,
// including an annotated one ("app: FastAPI = FastAPI()"). The probe is
// purely static: candidate modules are located and scanned, never imported,
// so no module-level side effects run during detection.
var appBinding = regexp.MustCompile(`(?m)^app\s*(:[^=\n]+)?=`)

// resolveModule determines the application module reference. Ordered, first
// success wins:
//
//  1. explicit APP_MODULE override, trusted verbatim;
//  2. module "main" declaring an `app` binding -> "main:app";
//  3. module "app" declaring an `app` binding -> "app:app";
//  4. depth-capped scan of the app root for the entry filename.
func (r *Resolver) resolveModule() (string, error) {
	if r.cfg.AppModule != "" {
		r.log.Debug("using explicit module reference", map[string]interface{}{
			"module": r.cfg.AppModule,
		})
		return r.cfg.AppModule, nil
	}

	for _, name := range []string{"main", "app"} {
		if r.probeModule(name) {
			ref := name + ":app"
			r.log.Debug("detected module by static probe", map[string]interface{}{
				"module": ref,
			})
			return ref, nil
		}
	}

	return r.searchEntryFile()
}

// probeModule reports whether a module with the given name exists directly
// under the app root and statically declares a top-level `app` binding.
// Each candidate is probed at most once per resolution.
func (r *Resolver) probeModule(name string) bool {
	candidates := []string{
		filepath.Join(r.cfg.AppRoot, name+".py"),
		filepath.Join(r.cfg.AppRoot, name, "__init__.py"),
	}
	for _, path := range candidates {
		src, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if appBinding.Match(src) {
			return true
		}
	}
	return false
}

// searchEntryFile scans the app root, at most searchDepth directory levels
// deep, for files named after the configured entry filename. Exactly one
// match is required; zero or several is a fatal configuration error.
func (r *Resolver) searchEntryFile() (string, error) {
	matches := findEntryFiles(r.cfg.AppRoot, r.cfg.EntryFile, r.searchDepth)

	switch len(matches) {
	case 0:
		return "", errors.ModuleUnresolved(
			fmt.Sprintf("no %s found under %s (searched %d levels deep)",
				r.cfg.EntryFile, r.cfg.AppRoot, r.searchDepth))
	case 1:
		return r.moduleRefFor(matches[0])
	default:
		return "", errors.ModuleUnresolved(
			fmt.Sprintf("found %d entry point candidates under %s: %v",
				len(matches), r.cfg.AppRoot, matches))
	}
}

// moduleRefFor translates a found entry file into a module reference.
// "<root>/main.py" becomes "main:app"; "<root>/<pkg>/main.py" becomes
// "<pkg>.main:app" with the immediate parent directory as package name.
func (r *Resolver) moduleRefFor(path string) (string, error) {
	rel, err := filepath.Rel(r.cfg.AppRoot, path)
	if err != nil {
		return "", errors.ModuleUnresolved(
			fmt.Sprintf("entry point %s is outside the app root %s", path, r.cfg.AppRoot))
	}

	stem := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))
	dir := filepath.Dir(rel)
	if dir == "." {
		return stem + ":app", nil
	}
	pkg := strings.ReplaceAll(dir, string(filepath.Separator), ".")
	return pkg + "." + stem + ":app", nil
}

// findEntryFiles walks root collecting files named entryFile, descending at
// most maxDepth directory levels. Results are sorted for determinism.
func findEntryFiles(root, entryFile string, maxDepth int) candidateSet {
	var matches candidateSet
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil || rel == "." {
			return nil
		}
		depth := len(strings.Split(rel, string(filepath.Separator)))
		if d.IsDir() {
			if depth >= maxDepth {
				return fs.SkipDir
			}
			return nil
		}
		if depth <= maxDepth && d.Name() == entryFile {
			matches = append(matches, path)
		}
		return nil
	})
	matches.sort()
	return matches
}
