package target

import (
	"fmt"
)

// BuildSettings is one compiled settings table for a build configuration.
type BuildSettings map[string]string

// SettingsCompiler builds the settings table for one configuration. The
// actual compilation is an external concern; the aggregate target only
// caches one table per configuration name.
type SettingsCompiler func(configName, configKind string, target *AggregateTarget) (BuildSettings, error)

// BuildSettingsFor lazily compiles and caches the settings table for the
// given configuration. Asking for an unknown configuration is an argument
// error listing the valid configuration names.
func (a *AggregateTarget) BuildSettingsFor(config string) (BuildSettings, error) {
	if settings, ok := a.buildSettingsByConfig[config]; ok {
		return settings, nil
	}
	c, ok := a.configuration(config)
	if !ok {
		return nil, a.unknownConfiguration(config)
	}
	if a.SettingsCompiler == nil {
		return nil, fmt.Errorf("failed to build settings for %s: no settings compiler", a.Label())
	}
	settings, err := a.SettingsCompiler(c.Name, c.Kind, a)
	if err != nil {
		return nil, fmt.Errorf("failed to build settings for %s (%s): %w", a.Label(), c.Name, err)
	}
	a.buildSettingsByConfig[config] = settings
	return settings, nil
}

// BuildSettings returns the settings table of the first declared
// configuration. It fails when the aggregate target has no configurations.
func (a *AggregateTarget) BuildSettings() (BuildSettings, error) {
	if len(a.BuildConfigurations) == 0 {
		return nil, fmt.Errorf("failed to build settings for %s: no build configurations", a.Label())
	}
	return a.BuildSettingsFor(a.BuildConfigurations[0].Name)
}
