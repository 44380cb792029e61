package docker

import (
	"testing"

	"github.com/docker/go-units"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/dockhand/deployer/models"
)

func TestServiceResourcesMemoryLimitOnly(t *testing.T) {
	res, err := ServiceResources(models.ApplicationDescriptor{MemoryLimit: "512M"})
	assert.NilError(t, err)
	assert.Assert(t, res != nil)
	assert.Assert(t, res.Limits != nil)
	assert.Check(t, is.Equal(res.Limits.MemoryBytes, int64(512*units.MiB)))
	assert.Check(t, is.Equal(res.Limits.NanoCPUs, int64(0)))
	assert.Check(t, res.Reservations == nil)
}

func TestServiceResourcesCPUFraction(t *testing.T) {
	res, err := ServiceResources(models.ApplicationDescriptor{
		CPULimit:       "0.5",
		CPUReservation: "0.25",
	})
	assert.NilError(t, err)
	assert.Check(t, is.Equal(res.Limits.NanoCPUs, int64(500000000)))
	assert.Check(t, is.Equal(res.Reservations.NanoCPUs, int64(250000000)))
}

func TestServiceResourcesAllUnset(t *testing.T) {
	res, err := ServiceResources(models.ApplicationDescriptor{})
	assert.NilError(t, err)
	assert.Check(t, res == nil)
}

func TestServiceResourcesZeroIsUnset(t *testing.T) {
	res, err := ServiceResources(models.ApplicationDescriptor{
		CPULimit:    "0",
		MemoryLimit: "0",
	})
	assert.NilError(t, err)
	assert.Check(t, res == nil)
}

func TestServiceResourcesMemoryNotation(t *testing.T) {
	for _, tc := range []struct {
		value string
		want  int64
	}{
		{"1g", 1 * units.GiB},
		{"512M", 512 * units.MiB},
		{"1024", 1024},
	} {
		res, err := ServiceResources(models.ApplicationDescriptor{MemoryReservation: tc.value})
		assert.NilError(t, err)
		assert.Check(t, is.Equal(res.Reservations.MemoryBytes, tc.want), tc.value)
	}
}

func TestServiceResourcesMalformed(t *testing.T) {
	_, err := ServiceResources(models.ApplicationDescriptor{CPULimit: "lots"})
	assert.ErrorContains(t, err, "cpu limit")

	_, err = ServiceResources(models.ApplicationDescriptor{CPUReservation: "-1"})
	assert.ErrorContains(t, err, "negative")

	_, err = ServiceResources(models.ApplicationDescriptor{MemoryLimit: "many bytes"})
	assert.ErrorContains(t, err, "memory limit")
}
