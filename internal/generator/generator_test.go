package generator

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nest-sdk-gen/internal/config"
	"nest-sdk-gen/internal/model"
	"nest-sdk-gen/internal/synth"
)

func dec(name string, args ...string) model.Decorator {
	return model.Decorator{Name: name, Args: args}
}

func testConfig(root string) *config.Config {
	return &config.Config{
		OutputPath:          "client",
		APIBase:             "/api",
		Paths:               []string{"src/**/*.controller.ts"},
		WhiteListDecorators: []string{"Param", "Query", "Body"},
		UnsupportedParams:   "keep",
		SkipDecorator:       "SkipClient",
		ProvidedIn:          "'root'",
		Naming:              config.NamingConfig{ClassSuffix: "Client", FileSuffix: ".service"},
		RootDir:             root,
	}
}

func sampleControllers() []model.Controller {
	return []model.Controller{
		{
			Name:       "UsersController",
			File:       "src/users/users.controller.ts",
			Decorators: []model.Decorator{dec("Controller", `'users'`)},
			Imports: []model.Import{
				{Module: "./user.dto", Named: []model.ImportSpecifier{{Name: "UserDto"}, {Name: "CreateUserDto"}}},
			},
			Methods: []model.Method{
				{
					Name:       "findOne",
					Decorators: []model.Decorator{dec("Get", `'{id}'`)},
					Params: []model.Parameter{
						{Name: "id", Type: "string", Decorators: []model.Decorator{dec("Param", `'id'`)}},
					},
					ReturnType: "Promise<UserDto>",
				},
				{
					Name:       "create",
					Decorators: []model.Decorator{dec("Post", `''`)},
					Params: []model.Parameter{
						{Name: "payload", Type: "CreateUserDto", Decorators: []model.Decorator{dec("Body")}},
						{Name: "notify", Type: "boolean", Decorators: []model.Decorator{dec("Query", `'notify'`)}},
					},
				},
			},
		},
		{
			Name:       "AdminController",
			File:       "src/Admin/admin.controller.ts",
			Decorators: []model.Decorator{dec("Controller", `'admin'`)},
			Methods: []model.Method{
				{Name: "ping", Decorators: []model.Decorator{dec("Get", `'ping'`)}},
			},
		},
		{
			Name: "PlainService",
			File: "src/plain.service.ts",
		},
	}
}

func TestGenerate(t *testing.T) {
	root := t.TempDir()
	result, err := Generate(testConfig(root), sampleControllers(), nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// Non-controllers are ignored, the rest ordered by lower-cased path
	if len(result.Files) != 2 {
		t.Fatalf("Expected 2 client files, got %d", len(result.Files))
	}
	if result.Files[0].ClassName != "AdminClient" || result.Files[1].ClassName != "UsersClient" {
		t.Errorf("Unexpected order: %s, %s", result.Files[0].ClassName, result.Files[1].ClassName)
	}

	paths := make([]string, 0, len(result.Artifacts))
	for _, a := range result.Artifacts {
		paths = append(paths, a.Path)
	}
	expected := "base-client.ts,admin-client.service.ts,users-client.service.ts"
	if strings.Join(paths, ",") != expected {
		t.Errorf("Artifacts = %v, expected %s", paths, expected)
	}

	users := string(result.Artifacts[2].Content)
	for _, want := range []string{
		"import { CreateUserDto, UserDto } from '../src/users/user.dto';",
		"export class UsersClient extends BaseClient {",
		"return this.request<UserDto>('GET', url);",
		"return this.request('POST', url, { query, body: payload });",
	} {
		if !strings.Contains(users, want) {
			t.Errorf("users client is missing %q:\n%s", want, users)
		}
	}

	if result.Summary.TotalControllers != 2 || result.Summary.TotalRoutes != 3 {
		t.Errorf("Summary = %+v", result.Summary)
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	root := t.TempDir()
	first, err := Generate(testConfig(root), sampleControllers(), nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Generate(testConfig(root), sampleControllers(), nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(first.Artifacts) != len(second.Artifacts) {
		t.Fatalf("artifact count differs: %d vs %d", len(first.Artifacts), len(second.Artifacts))
	}
	for i := range first.Artifacts {
		if first.Artifacts[i].Path != second.Artifacts[i].Path ||
			!bytes.Equal(first.Artifacts[i].Content, second.Artifacts[i].Content) {
			t.Errorf("artifact %s differs between runs", first.Artifacts[i].Path)
		}
	}
}

func TestGenerateAbortsOnClassificationError(t *testing.T) {
	controllers := sampleControllers()
	controllers[0].Methods = append(controllers[0].Methods, model.Method{
		Name:       "both",
		Decorators: []model.Decorator{dec("Get"), dec("Post")},
	})

	result, err := Generate(testConfig(t.TempDir()), controllers, nil)
	if !errors.Is(err, synth.ErrMultipleVerbs) {
		t.Fatalf("Expected ErrMultipleVerbs, got %v", err)
	}
	if result != nil {
		t.Error("No result may be returned for a failed run")
	}
}

func TestGenerateRejectsDuplicateFiles(t *testing.T) {
	controllers := sampleControllers()
	dup := controllers[0]
	dup.File = "src/legacy/users.controller.ts"
	controllers = append(controllers, dup)

	if _, err := Generate(testConfig(t.TempDir()), controllers, nil); err == nil {
		t.Fatal("Expected an error for two controllers generating the same file")
	}
}

func TestWriteFilesystem(t *testing.T) {
	root := t.TempDir()
	result, err := Generate(testConfig(root), sampleControllers(), nil)
	if err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(root, "client")
	if err := Write(NewFilesystemSink(out), result.Artifacts); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	for _, a := range result.Artifacts {
		data, err := os.ReadFile(filepath.Join(out, a.Path))
		if err != nil {
			t.Errorf("missing %s: %v", a.Path, err)
			continue
		}
		if !bytes.Equal(data, a.Content) {
			t.Errorf("%s content differs from the rendered artifact", a.Path)
		}
	}

	leftovers, _ := filepath.Glob(filepath.Join(out, ".nest-sdk-gen-*.tmp"))
	if len(leftovers) != 0 {
		t.Errorf("temp files left behind: %v", leftovers)
	}
}

func TestMemorySink(t *testing.T) {
	sink := NewMemorySink()
	if err := Write(sink, []Artifact{{Path: "a.ts", Content: []byte("a")}}); err != nil {
		t.Fatal(err)
	}
	if got, ok := sink.Get("a.ts"); !ok || string(got) != "a" {
		t.Errorf("Get(a.ts) = %q, %v", got, ok)
	}
	if sink.Len() != 1 {
		t.Errorf("Len() = %d", sink.Len())
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		path  string
		valid bool
	}{
		{"users-client.service.ts", true},
		{"nested/a.ts", true},
		{"", false},
		{"/abs.ts", false},
		{"../escape.ts", false},
		{"a\\b.ts", false},
	}
	for _, tt := range tests {
		err := ValidatePath(tt.path)
		if (err == nil) != tt.valid {
			t.Errorf("ValidatePath(%q) = %v, expected valid=%v", tt.path, err, tt.valid)
		}
	}
}
