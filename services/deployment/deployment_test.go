package deployment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/dockhand/deployer/models"
	"github.com/dockhand/deployer/services/build"
)

// fakePlatform records the order of platform calls.
type fakePlatform struct {
	ops          []string
	reconcileErr error
	pushErr      error
	removeErr    error
}

func (f *fakePlatform) Reconcile(_ context.Context, _ models.ApplicationDescriptor) error {
	f.ops = append(f.ops, "reconcile")
	return f.reconcileErr
}

func (f *fakePlatform) PushImage(_ context.Context, _ models.ApplicationDescriptor, _ io.Writer) error {
	f.ops = append(f.ops, "push")
	return f.pushErr
}

func (f *fakePlatform) Remove(_ context.Context, _ string) error {
	f.ops = append(f.ops, "remove")
	return f.removeErr
}

type fakeStrategy struct {
	platform *fakePlatform
	err      error
}

func (s fakeStrategy) Execute(_ context.Context, _ models.ApplicationDescriptor, sink io.Writer) error {
	s.platform.ops = append(s.platform.ops, "build")
	fmt.Fprintln(sink, "toolchain output")
	return s.err
}

func (s fakeStrategy) Command(_ models.ApplicationDescriptor, logPath string) string {
	return "true >> " + logPath + " 2>&1"
}

func newTestDeployer(t *testing.T, fp *fakePlatform, buildErr error) (*Deployer, string) {
	t.Helper()
	logsRoot := t.TempDir()
	d := NewDeployer(fp, logsRoot, nil)
	d.builds = func(typ models.BuildType) (build.Strategy, bool) {
		if typ == "" {
			return nil, false
		}
		return fakeStrategy{platform: fp, err: buildErr}, true
	}
	return d, logsRoot
}

// readDeployLog reads the single log file a Deploy call produced.
func readDeployLog(t *testing.T, logsRoot string) string {
	t.Helper()
	entries, err := os.ReadDir(logsRoot)
	assert.NilError(t, err)
	assert.Assert(t, is.Len(entries, 1))
	b, err := os.ReadFile(filepath.Join(logsRoot, entries[0].Name()))
	assert.NilError(t, err)
	return string(b)
}

func builtApp() models.ApplicationDescriptor {
	return models.ApplicationDescriptor{
		AppName:    "api",
		SourceType: models.SourceTypeBuild,
		BuildType:  models.BuildTypeNixpacks,
		Registry:   &models.Registry{RegistryURL: "reg.example.com"},
	}
}

func TestDeployOrder(t *testing.T) {
	fp := &fakePlatform{}
	d, logsRoot := newTestDeployer(t, fp, nil)

	assert.NilError(t, d.Deploy(context.Background(), builtApp()))

	assert.Check(t, is.DeepEqual(fp.ops, []string{"build", "push", "reconcile"}))
	log := readDeployLog(t, logsRoot)
	assert.Check(t, is.Contains(log, "toolchain output"))
	assert.Check(t, is.Contains(log, "Docker Deployed: ✅"))
}

func TestDeployImageSourceSkipsBuildAndPush(t *testing.T) {
	fp := &fakePlatform{}
	d, _ := newTestDeployer(t, fp, nil)

	err := d.Deploy(context.Background(), models.ApplicationDescriptor{
		AppName:     "api",
		SourceType:  models.SourceTypeImage,
		DockerImage: "nginx:1.25",
	})
	assert.NilError(t, err)
	assert.Check(t, is.DeepEqual(fp.ops, []string{"reconcile"}))
}

func TestDeployWithoutRegistrySkipsPush(t *testing.T) {
	fp := &fakePlatform{}
	d, _ := newTestDeployer(t, fp, nil)

	app := builtApp()
	app.Registry = nil
	assert.NilError(t, d.Deploy(context.Background(), app))
	assert.Check(t, is.DeepEqual(fp.ops, []string{"build", "reconcile"}))
}

func TestDeployBuildFailureAborts(t *testing.T) {
	fp := &fakePlatform{}
	d, logsRoot := newTestDeployer(t, fp, errors.New("compiler exploded"))

	err := d.Deploy(context.Background(), builtApp())
	assert.ErrorContains(t, err, "compiler exploded")

	assert.Check(t, is.DeepEqual(fp.ops, []string{"build"}))
	log := readDeployLog(t, logsRoot)
	assert.Check(t, is.Contains(log, "Error ❌"))
	assert.Check(t, is.Contains(log, "compiler exploded"))
}

func TestDeployReconcileFailureMarksLog(t *testing.T) {
	fp := &fakePlatform{reconcileErr: errors.New("version out of date")}
	d, logsRoot := newTestDeployer(t, fp, nil)

	err := d.Deploy(context.Background(), builtApp())
	assert.ErrorContains(t, err, "version out of date")
	assert.Check(t, is.Contains(readDeployLog(t, logsRoot), "Error ❌"))
}

func TestDeployValidationFailureSkipsPlatform(t *testing.T) {
	fp := &fakePlatform{}
	d, logsRoot := newTestDeployer(t, fp, nil)

	app := builtApp()
	app.Mounts = []models.Mount{
		{Type: models.MountTypeVolume, Name: "a", MountPath: "/data"},
		{Type: models.MountTypeVolume, Name: "b", MountPath: "/data"},
	}
	err := d.Deploy(context.Background(), app)
	assert.ErrorContains(t, err, "duplicate mount target")
	assert.Check(t, is.Len(fp.ops, 0))
	assert.Check(t, is.Contains(readDeployLog(t, logsRoot), "Error ❌"))
}

func TestRemoveDelegates(t *testing.T) {
	fp := &fakePlatform{}
	d, _ := newTestDeployer(t, fp, nil)

	assert.NilError(t, d.Remove(context.Background(), "api"))
	assert.Check(t, is.DeepEqual(fp.ops, []string{"remove"}))
}
