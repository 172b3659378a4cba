package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса

var exprSeeds = []string{
	"",
	"a",
	"a + b * c == d",
	"xs.count == 4",
	"foo.bar(x, y: 2)?.baz[0]!",
	"a?.b!",
	"a?.b!.c",
	"a.b?()",
	"f!(x)",
	"a?.f()!.g",
	"c ? [1, 2] : [3]",
	"[1: \"a\", 2: \"b\"][1] ?? \"\"",
	"-x + !flag",
	"a == b == c",
	"x ~~~ y",
	"\\.name",
	"#file",
	"xs.map { $0 * 2 }.reduce(0, +)",
	"(a, b).0",
	"\"sum: \\(a + b)\"",
	"値 == 名前",
	"a /* x */ + b // tail\n",
	"f(",
	"a +",
	"[1, 2",
	"\"open",
}

var fileSeeds = []string{
	"#assert(xs.count == 4)\n",
	"func test() {\n    #assert(a.b?.c == nil, \"message\")\n    #assert(\n        x > 0\n    )\n}\n",
	"#assert(#assert(a))",
	"#assert(",
	"# assert(a) #assertx(b)",
}

func addExprSeeds(f *testing.F) {
	for _, s := range exprSeeds {
		f.Add([]byte(s))
	}
}

func addFileSeeds(f *testing.F) {
	for _, s := range fileSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.swift файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".swift" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) > maxSeedBytes {
		src = src[:maxSeedBytes]
	}
	return append([]byte(nil), src...)
}
