package mocks

//go:generate mockery --name EventStore --srcpkg github.com/aevon-lab/aevon-rules/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name ProfileStore --srcpkg github.com/aevon-lab/aevon-rules/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name Store --srcpkg github.com/aevon-lab/aevon-rules/internal/query --output ./query --outpkg querymocks --with-expecter
//go:generate mockery --name ProfileMatcher --srcpkg github.com/aevon-lab/aevon-rules/internal/query --output ./query --outpkg querymocks --with-expecter
//go:generate mockery --name Querier --srcpkg github.com/aevon-lab/aevon-rules/internal/engine --output ./engine --outpkg enginemocks --with-expecter
//go:generate mockery --name Sink --srcpkg github.com/aevon-lab/aevon-rules/internal/engine --output ./engine --outpkg enginemocks --with-expecter
//go:generate mockery --name Submitter --srcpkg github.com/aevon-lab/aevon-rules/internal/ingestion --output ./ingestion --outpkg ingestionmocks --with-expecter
