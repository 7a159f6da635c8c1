package loader

// AsyncLoaderBuilderOption is a functional option for configuring an AsyncLoader.
type AsyncLoaderBuilderOption func(*asyncLoader)

// WithLoader sets the synchronous Loader used for model loads.
//
// Parameters:
//   - l: the loader
//
// Returns:
//   - AsyncLoaderBuilderOption: option function to apply
func WithLoader(l Loader) AsyncLoaderBuilderOption {
	return func(a *asyncLoader) {
		a.loader = l
	}
}

// WithExecutor sets the Executor load jobs run on. Use InlineExecutor{} for
// deterministic tests.
//
// Parameters:
//   - e: the executor
//
// Returns:
//   - AsyncLoaderBuilderOption: option function to apply
func WithExecutor(e Executor) AsyncLoaderBuilderOption {
	return func(a *asyncLoader) {
		a.executor = e
	}
}
